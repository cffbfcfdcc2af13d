// Package resources loads a declarative manifest of assets concurrently and
// announces when every one of them is available.
package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/experience/events"
	"github.com/milk9111/experience/scene"
)

const (
	// EventReady fires exactly once, after every source has loaded.
	EventReady = "ready"
	// EventLoaded fires with (name string, progress float64) per source.
	EventLoaded = "loaded"
	// EventError fires once with the first error, after which ready can no
	// longer fire.
	EventError = "error"
)

// DefaultTimeout bounds the whole load.
const DefaultTimeout = 30 * time.Second

type result struct {
	source Source
	item   any
	err    error
}

// Resources is the asset store. Loads run on their own goroutines; results
// are applied, and events emitted, only on the goroutine that calls Update or
// Wait.
type Resources struct {
	*events.Emitter

	sources []Source
	loaders Loaders
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time

	items    map[string]any
	pending  map[string]struct{}
	toLoad   int
	loaded   int
	ready    bool
	err      error
	errs     []error
	deadline time.Time
	results  chan result
}

// Option configures Resources.
type Option func(*Resources)

// WithTimeout bounds the load. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resources) { r.timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resources) {
		if l != nil {
			r.log = l
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(r *Resources) { r.now = now }
}

// New validates sources and immediately starts one load per source. Cancel
// ctx to abandon loads still in flight.
func New(ctx context.Context, sources []Source, loaders Loaders, opts ...Option) (*Resources, error) {
	if err := Validate(sources); err != nil {
		return nil, err
	}
	r := &Resources{
		Emitter: events.NewEmitter(),
		sources: append([]Source(nil), sources...),
		loaders: loaders,
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
		now:     time.Now,
		items:   make(map[string]any, len(sources)),
		pending: make(map[string]struct{}, len(sources)),
		toLoad:  len(sources),
		results: make(chan result, len(sources)),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, s := range r.sources {
		r.pending[s.Name] = struct{}{}
	}
	r.start(ctx)
	return r, nil
}

func (r *Resources) start(ctx context.Context) {
	cancel := context.CancelFunc(func() {})
	if r.timeout > 0 {
		r.deadline = r.now().Add(r.timeout)
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range r.sources {
		g.Go(func() error {
			item, err := r.load(gctx, s)
			if err != nil {
				err = &LoadError{Source: s, Err: err}
			}
			r.results <- result{source: s, item: item, err: err}
			return err
		})
	}
	go func() {
		_ = g.Wait()
		cancel()
	}()
}

// load dispatches on the closed Kind set.
func (r *Resources) load(ctx context.Context, s Source) (any, error) {
	switch s.Kind {
	case KindTexture:
		if r.loaders.Texture == nil {
			return nil, ErrNoLoader
		}
		return r.loaders.Texture.LoadTexture(ctx, s.Path())
	case KindCubeTexture:
		if r.loaders.CubeTexture == nil {
			return nil, ErrNoLoader
		}
		var faces [scene.CubeFaces]string
		copy(faces[:], s.Paths)
		return r.loaders.CubeTexture.LoadCubeTexture(ctx, faces)
	case KindModel:
		if r.loaders.Model == nil {
			return nil, ErrNoLoader
		}
		return r.loaders.Model.LoadModel(ctx, s.Path())
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, s.Kind)
	}
}

// Update applies every completed load without blocking. The frame loop calls
// it once per tick.
func (r *Resources) Update() {
	if r == nil {
		return
	}
	for {
		select {
		case res := <-r.results:
			r.apply(res)
		default:
			r.settle()
			return
		}
	}
}

// Wait blocks until ready fires, a load fails, the load times out or ctx is
// done, applying results as they arrive.
func (r *Resources) Wait(ctx context.Context) error {
	var timeout <-chan time.Time
	if !r.deadline.IsZero() {
		timer := time.NewTimer(r.deadline.Sub(r.now()))
		defer timer.Stop()
		timeout = timer.C
	}
	for {
		r.settle()
		if r.ready {
			return nil
		}
		if r.err != nil {
			return r.err
		}
		select {
		case res := <-r.results:
			r.apply(res)
		case <-timeout:
			r.fail(ErrLoadTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// settle fires ready for an empty manifest and enforces the deadline.
func (r *Resources) settle() {
	if r.ready || r.err != nil {
		return
	}
	if r.loaded == r.toLoad {
		r.markReady()
		return
	}
	if !r.deadline.IsZero() && !r.now().Before(r.deadline) {
		r.fail(ErrLoadTimeout)
	}
}

func (r *Resources) apply(res result) {
	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			res.err = fmt.Errorf("%w: %w", ErrLoadTimeout, res.err)
		}
		r.fail(res.err)
		return
	}
	r.sourceLoaded(res.source, res.item)
}

func (r *Resources) sourceLoaded(s Source, item any) {
	if _, ok := r.pending[s.Name]; !ok {
		r.log.Warn("ignoring completion for unexpected or already loaded source", zap.String("source", s.Name))
		return
	}
	delete(r.pending, s.Name)
	r.items[s.Name] = item
	r.loaded++
	r.log.Debug("source loaded", zap.String("source", s.Name), zap.Stringer("kind", s.Kind), zap.Int("loaded", r.loaded), zap.Int("total", r.toLoad))
	r.Trigger(EventLoaded, s.Name, r.Progress())

	if r.loaded == r.toLoad {
		r.markReady()
	}
}

func (r *Resources) markReady() {
	if r.ready || r.err != nil {
		return
	}
	r.ready = true
	r.log.Info("all resources loaded", zap.Int("total", r.toLoad))
	r.Trigger(EventReady)
}

func (r *Resources) fail(err error) {
	r.errs = append(r.errs, err)
	if r.err != nil || r.ready {
		return
	}
	r.err = err
	r.log.Error("resource load failed", zap.Error(err))
	r.Trigger(EventError, err)
}

// Ready reports whether the ready event has fired.
func (r *Resources) Ready() bool { return r.ready }

// Err returns every load failure seen so far, joined.
func (r *Resources) Err() error { return errors.Join(r.errs...) }

// Loaded returns how many sources have completed.
func (r *Resources) Loaded() int { return r.loaded }

// Total returns how many sources were declared.
func (r *Resources) Total() int { return r.toLoad }

// Progress is Loaded / Total, or 1 for an empty manifest.
func (r *Resources) Progress() float64 {
	if r.toLoad == 0 {
		return 1
	}
	return float64(r.loaded) / float64(r.toLoad)
}

// Item returns the raw loaded asset.
func (r *Resources) Item(name string) (any, bool) {
	item, ok := r.items[name]
	return item, ok
}

// Texture returns a loaded texture by source name.
func (r *Resources) Texture(name string) (*scene.Texture, bool) {
	t, ok := r.items[name].(*scene.Texture)
	return t, ok
}

// CubeTexture returns a loaded cube texture by source name.
func (r *Resources) CubeTexture(name string) (*scene.CubeTexture, bool) {
	t, ok := r.items[name].(*scene.CubeTexture)
	return t, ok
}

// Model returns a loaded model by source name.
func (r *Resources) Model(name string) (*Model, bool) {
	m, ok := r.items[name].(*Model)
	return m, ok
}
