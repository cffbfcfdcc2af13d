// Package animation plays named clips on a model and cross-fades between
// them.
package animation

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoClips     = errors.New("animation: no clips")
	ErrUnknownClip = errors.New("animation: unknown clip")
)

// Clip is a named, timed animation track. Duration is in seconds.
type Clip struct {
	Name     string
	Duration float64
}

// Action is the playback state of one clip.
type Action struct {
	Clip    Clip
	Time    float64
	Weight  float64
	Playing bool
	Loop    bool
}

// Reset rewinds the action to the start pose.
func (a *Action) Reset() {
	a.Time = 0
}

func (a *Action) advance(dt float64) {
	if !a.Playing || dt <= 0 {
		return
	}
	a.Time += dt
	d := a.Clip.Duration
	if d <= 0 {
		return
	}
	if a.Loop {
		a.Time = math.Mod(a.Time, d)
		return
	}
	if a.Time >= d {
		a.Time = d
		a.Playing = false
	}
}

// Mixer owns one action per clip and advances them on a shared clock.
type Mixer struct {
	actions map[string]*Action
	order   []string
	time    float64
}

// NewMixer creates a looping, stopped action for every clip.
func NewMixer(clips []Clip) (*Mixer, error) {
	if len(clips) == 0 {
		return nil, ErrNoClips
	}
	m := &Mixer{actions: make(map[string]*Action, len(clips))}
	for _, c := range clips {
		if c.Name == "" {
			return nil, fmt.Errorf("animation: clip %d has no name", len(m.order))
		}
		if _, ok := m.actions[c.Name]; ok {
			return nil, fmt.Errorf("animation: duplicate clip %q", c.Name)
		}
		m.actions[c.Name] = &Action{Clip: c, Loop: true}
		m.order = append(m.order, c.Name)
	}
	return m, nil
}

// Action returns the action for the named clip.
func (m *Mixer) Action(name string) (*Action, bool) {
	if m == nil {
		return nil, false
	}
	a, ok := m.actions[name]
	return a, ok
}

// Names lists clip names in declaration order.
func (m *Mixer) Names() []string {
	return append([]string(nil), m.order...)
}

// Time is the total mixer clock in seconds.
func (m *Mixer) Time() float64 { return m.time }

// Update advances the mixer clock and every playing action by dt seconds.
func (m *Mixer) Update(dt float64) {
	if m == nil || dt <= 0 {
		return
	}
	m.time += dt
	for _, name := range m.order {
		m.actions[name].advance(dt)
	}
}
