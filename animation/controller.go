package animation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/experience/common"
)

// DefaultFade is the cross-fade duration shared by every transition.
const DefaultFade = time.Second

// Transition is an in-progress cross-fade. From holds the weight each
// outgoing action had when the fade started.
type Transition struct {
	To       string
	From     map[string]float64
	ToStart  float64
	Elapsed  float64
	Duration float64
}

// Progress is the fraction of the fade completed, in [0, 1].
func (t *Transition) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := t.Elapsed / t.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Controller is a cross-fade state machine over a mixer. Exactly one clip is
// current at any time.
type Controller struct {
	mixer      *Mixer
	current    string
	transition *Transition
	fade       float64
	log        *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithFade sets the cross-fade duration used by every Play.
func WithFade(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.fade = d.Seconds()
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController builds a mixer for clips and starts initial at full weight.
// An empty initial picks the first clip.
func NewController(clips []Clip, initial string, opts ...Option) (*Controller, error) {
	mixer, err := NewMixer(clips)
	if err != nil {
		return nil, err
	}
	c := &Controller{mixer: mixer, fade: DefaultFade.Seconds(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	if initial == "" {
		initial = mixer.order[0]
	}
	a, ok := mixer.Action(initial)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, initial)
	}
	a.Reset()
	a.Playing = true
	a.Weight = 1
	c.current = initial
	return c, nil
}

// Play cross-fades from the current clip to name. The target is rewound to
// its start pose. Playing the current clip again is a no-op and does not
// restart it.
func (c *Controller) Play(name string) error {
	next, ok := c.mixer.Action(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}
	if name == c.current {
		return nil
	}

	from := make(map[string]float64)
	for n, a := range c.mixer.actions {
		if n != name && (a.Playing || a.Weight > 0) {
			from[n] = a.Weight
		}
	}

	next.Reset()
	next.Playing = true
	c.transition = &Transition{
		To:       name,
		From:     from,
		ToStart:  next.Weight,
		Duration: c.fade,
	}
	c.log.Debug("cross-fade", zap.String("from", c.current), zap.String("to", name), zap.Float64("duration", c.fade))
	c.current = name

	if c.fade <= 0 {
		c.blend()
	}
	return nil
}

// Update advances playback and any running cross-fade by deltaMs
// milliseconds.
func (c *Controller) Update(deltaMs float64) {
	if c == nil || deltaMs <= 0 {
		return
	}
	dt := deltaMs / 1000
	if c.transition != nil {
		c.transition.Elapsed += dt
		c.blend()
	}
	c.mixer.Update(dt)
}

// blend applies the transition weights for its current progress and retires
// it once complete.
func (c *Controller) blend() {
	t := c.transition
	p := t.Progress()
	for n, w0 := range t.From {
		a := c.mixer.actions[n]
		a.Weight = common.Lerp(w0, 0, p)
	}
	to := c.mixer.actions[t.To]
	to.Weight = common.Lerp(t.ToStart, 1, p)

	if p < 1 {
		return
	}
	for n := range t.From {
		a := c.mixer.actions[n]
		a.Weight = 0
		a.Playing = false
	}
	to.Weight = 1
	c.transition = nil
}

// Current returns the current clip name.
func (c *Controller) Current() string { return c.current }

// Transition returns the running cross-fade, or nil.
func (c *Controller) Transition() *Transition { return c.transition }

// Weights returns the weight of every clip.
func (c *Controller) Weights() map[string]float64 {
	out := make(map[string]float64, len(c.mixer.actions))
	for n, a := range c.mixer.actions {
		out[n] = a.Weight
	}
	return out
}

// Mixer exposes the underlying mixer.
func (c *Controller) Mixer() *Mixer { return c.mixer }

// Fade returns the cross-fade duration.
func (c *Controller) Fade() time.Duration {
	return time.Duration(c.fade * float64(time.Second))
}
