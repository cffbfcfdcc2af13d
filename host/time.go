package host

import (
	"context"
	"time"

	"github.com/milk9111/experience/events"
)

// EventTick fires once per frame with the frame delta as its only argument.
const EventTick = "tick"

// DefaultDelta is the delta reported before the first real frame.
const DefaultDelta = 16 * time.Millisecond

// Time is the per-frame clock. The host drives it by calling Tick once per
// frame, or by running it headless with Run.
type Time struct {
	*events.Emitter

	now     func() time.Time
	start   time.Time
	current time.Time
	elapsed time.Duration
	delta   time.Duration
	frames  int
}

// TimeOption configures a Time.
type TimeOption func(*Time)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) TimeOption {
	return func(t *Time) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTime creates a clock started at the current instant.
func NewTime(opts ...TimeOption) *Time {
	t := &Time{
		Emitter: events.NewEmitter(),
		now:     time.Now,
		delta:   DefaultDelta,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.start = t.now()
	t.current = t.start
	return t
}

// Tick samples the clock and emits EventTick.
func (t *Time) Tick() {
	if t == nil {
		return
	}
	now := t.now()
	t.advanceTo(now)
}

// Advance moves the clock forward by d without sampling the wall clock and
// emits EventTick. Fixed-step hosts and tests use it.
func (t *Time) Advance(d time.Duration) {
	if t == nil || d < 0 {
		return
	}
	t.advanceTo(t.current.Add(d))
}

func (t *Time) advanceTo(now time.Time) {
	t.delta = now.Sub(t.current)
	t.current = now
	t.elapsed = now.Sub(t.start)
	t.frames++
	t.Trigger(EventTick, t.delta)
}

// Run ticks every interval until ctx is done or frames ticks have elapsed.
// frames <= 0 means unbounded.
func (t *Time) Run(ctx context.Context, interval time.Duration, frames int) error {
	if interval <= 0 {
		interval = DefaultDelta
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 0; frames <= 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.Tick()
		}
	}
	return nil
}

// Delta is the duration of the last frame.
func (t *Time) Delta() time.Duration { return t.delta }

// DeltaMs is Delta in milliseconds.
func (t *Time) DeltaMs() float64 { return float64(t.delta) / float64(time.Millisecond) }

// Elapsed is the time since the clock started.
func (t *Time) Elapsed() time.Duration { return t.elapsed }

// Frames is the number of ticks emitted so far.
func (t *Time) Frames() int { return t.frames }
