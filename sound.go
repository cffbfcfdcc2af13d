package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const (
	sampleRate = 44100
	hitPath    = "sounds/hit.wav"
)

// hitSound replays one short clip from the start for every hard landing.
type hitSound struct {
	player *audio.Player
}

// newHitSound loads sounds/hit.wav under root, or synthesizes a knock when
// the file is absent.
func newHitSound(ctx *audio.Context, root string) (*hitSound, error) {
	pcm, err := loadWAV(filepath.Join(root, hitPath))
	if err != nil {
		pcm = synthesizeKnock(80 * time.Millisecond)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("hit sound: empty clip")
	}
	return &hitSound{player: ctx.NewPlayerFromBytes(pcm)}, nil
}

func loadWAV(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return io.ReadAll(stream)
}

// synthesizeKnock returns a decaying low tone as 16-bit stereo PCM.
func synthesizeKnock(d time.Duration) []byte {
	n := int(d.Seconds() * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		v := math.Sin(2*math.Pi*180*t) * math.Exp(-t*40)
		s := int16(v * math.MaxInt16 * 0.8)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}

// Play restarts the clip at volume.
func (h *hitSound) Play(volume float64) {
	if h == nil {
		return
	}
	h.player.SetVolume(volume)
	_ = h.player.SetPosition(0)
	h.player.Play()
}
