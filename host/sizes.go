package host

import (
	"math"

	"github.com/milk9111/experience/events"
)

// EventResize fires with (width, height int) when the viewport changes.
const EventResize = "resize"

// DefaultMaxPixelRatio caps high-density displays.
const DefaultMaxPixelRatio = 2.0

// Sizes tracks the drawing surface dimensions.
type Sizes struct {
	*events.Emitter

	width         int
	height        int
	pixelRatio    float64
	maxPixelRatio float64
}

// NewSizes creates a size source for a surface of w by h logical pixels.
func NewSizes(w, h int, deviceRatio, maxPixelRatio float64) *Sizes {
	if maxPixelRatio <= 0 {
		maxPixelRatio = DefaultMaxPixelRatio
	}
	s := &Sizes{
		Emitter:       events.NewEmitter(),
		width:         w,
		height:        h,
		maxPixelRatio: maxPixelRatio,
	}
	s.pixelRatio = s.clampRatio(deviceRatio)
	return s
}

// Resize records new dimensions and emits EventResize. Hosts that report the
// size every frame can call this freely; unchanged or invalid sizes are
// ignored.
func (s *Sizes) Resize(w, h int) {
	if s == nil || w <= 0 || h <= 0 {
		return
	}
	if s.width == w && s.height == h {
		return
	}
	s.width = w
	s.height = h
	s.Trigger(EventResize, w, h)
}

// SetDeviceRatio updates the pixel ratio, clamped to the configured maximum.
func (s *Sizes) SetDeviceRatio(r float64) {
	if s == nil {
		return
	}
	s.pixelRatio = s.clampRatio(r)
}

func (s *Sizes) clampRatio(r float64) float64 {
	if r <= 0 {
		r = 1
	}
	return math.Min(r, s.maxPixelRatio)
}

// Width returns the surface width.
func (s *Sizes) Width() int { return s.width }

// Height returns the surface height.
func (s *Sizes) Height() int { return s.height }

// PixelRatio returns the clamped device pixel ratio.
func (s *Sizes) PixelRatio() float64 { return s.pixelRatio }

// Aspect returns width / height, or 1 for an empty surface.
func (s *Sizes) Aspect() float64 {
	if s.height == 0 {
		return 1
	}
	return float64(s.width) / float64(s.height)
}
