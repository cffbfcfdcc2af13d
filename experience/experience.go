// Package experience is the composition root. It owns the viewport and
// frame clocks, the scene, resources, camera, renderer and world, relays
// resize and tick signals to them in a fixed order, and tears everything
// down.
package experience

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/experience/debug"
	"github.com/milk9111/experience/host"
	"github.com/milk9111/experience/logging"
	"github.com/milk9111/experience/render"
	"github.com/milk9111/experience/resources"
	"github.com/milk9111/experience/scene"
	"github.com/milk9111/experience/world"
)

var ErrNoBackend = errors.New("experience: no render backend")

type updater interface{ Update() }

type resizer interface{ Resize() }

// Experience wires every part together. Build one with New and release it
// with Destroy.
type Experience struct {
	Config    Config
	Debug     *debug.Debug
	Sizes     *host.Sizes
	Time      *host.Time
	Scene     *scene.Scene
	Resources *resources.Resources
	Camera    *Camera
	Renderer  *Renderer
	World     *world.World

	log       *zap.Logger
	updaters  []updater
	resizers  []resizer
	destroyed bool
}

type options struct {
	log         *zap.Logger
	sources     []resources.Source
	loaders     *resources.Loaders
	timeOpts    []host.TimeOption
	deviceRatio float64
}

type Option func(*options)

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSources replaces the configured manifest.
func WithSources(s []resources.Source) Option {
	return func(o *options) { o.sources = s }
}

// WithLoaders replaces the filesystem loaders rooted at the asset directory.
func WithLoaders(l resources.Loaders) Option {
	return func(o *options) { o.loaders = &l }
}

// WithTimeOptions configures the frame clock.
func WithTimeOptions(opts ...host.TimeOption) Option {
	return func(o *options) { o.timeOpts = append(o.timeOpts, opts...) }
}

// WithDeviceRatio sets the display's device pixel ratio.
func WithDeviceRatio(r float64) Option {
	return func(o *options) { o.deviceRatio = r }
}

// New builds the experience in dependency order and starts loading
// resources. ctx bounds the loads; world entities are built from the
// resources ready event during a later Update.
func New(ctx context.Context, cfg Config, backend render.Backend, opts ...Option) (*Experience, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	o := options{log: zap.NewNop(), deviceRatio: 1}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logging.Or(o.log)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clearColor, _ := ParseColor(cfg.Renderer.ClearColor)

	sources := o.sources
	if sources == nil {
		var err error
		sources, err = resources.LoadManifest(cfg.Resources.Manifest)
		if err != nil {
			return nil, fmt.Errorf("experience: %w", err)
		}
	}
	root := cfg.Resources.Root
	if root == "" {
		root = "."
	}
	loaders := resources.NewFSLoaders(os.DirFS(root), nil)
	if o.loaders != nil {
		loaders = *o.loaders
	}

	e := &Experience{Config: cfg, log: o.log.Named("experience")}
	e.Debug = debug.New(cfg.Debug.Active, o.log.Named("debug"))
	e.Sizes = host.NewSizes(cfg.Window.Width, cfg.Window.Height, o.deviceRatio, cfg.Renderer.MaxPixelRatio)
	e.Time = host.NewTime(o.timeOpts...)
	e.Scene = scene.New()

	res, err := resources.New(ctx, sources, loaders,
		resources.WithTimeout(cfg.Resources.Timeout),
		resources.WithLogger(o.log.Named("resources")))
	if err != nil {
		return nil, fmt.Errorf("experience: %w", err)
	}
	e.Resources = res
	e.Resources.On(resources.EventError, func(args ...any) {
		e.log.Error("resources failed, world will not be built", zap.Any("error", args))
	})

	e.Camera = NewCamera(e.Sizes, e.Scene, cfg.Camera)
	e.Renderer = NewRenderer(backend, e.Sizes, e.Scene, e.Camera, clearColor)
	e.World = world.New(world.Deps{
		Scene:     e.Scene,
		Resources: e.Resources,
		Time:      e.Time,
		Debug:     e.Debug,
	},
		world.WithLogger(o.log),
		world.WithSources(cfg.World.Sources),
		world.WithFoxFade(cfg.World.FoxFade),
		world.WithEnvMapIntensity(cfg.World.EnvMapIntensity),
		world.WithPhysics(cfg.World.Physics),
	)

	e.resizers = []resizer{e.Camera, e.Renderer}
	e.updaters = []updater{e.Camera, e.World, e.Renderer}

	e.Sizes.On(host.EventResize, func(...any) { e.Resize() })
	e.Time.On(host.EventTick, func(...any) { e.Update() })

	if cfg.Debug.Active && cfg.Debug.Scripts != "" {
		if err := e.Debug.Watch(cfg.Debug.Scripts); err != nil {
			e.log.Warn("debug scripts disabled", zap.Error(err))
		}
	}

	e.log.Info("experience created",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("sources", len(sources)),
		zap.Bool("debug", cfg.Debug.Active))
	return e, nil
}

// Resize fans the viewport change out to camera then renderer.
func (e *Experience) Resize() {
	if e == nil || e.destroyed {
		return
	}
	for _, r := range e.resizers {
		r.Resize()
	}
}

// Update applies finished loads, then advances camera, world and renderer in
// that order.
func (e *Experience) Update() {
	if e == nil || e.destroyed {
		return
	}
	e.Resources.Update()
	e.Debug.Update()
	for _, u := range e.updaters {
		u.Update()
	}
}

// Destroy detaches from both signal sources, disposes every geometry and
// material in the scene or owned by the world once, then releases controls,
// renderer and debug tooling. Further calls do nothing.
func (e *Experience) Destroy() {
	if e == nil || e.destroyed {
		return
	}
	e.destroyed = true

	e.Sizes.Off(host.EventResize)
	e.Time.Off(host.EventTick)
	e.Resources.Off()

	seen := make(map[scene.Disposable]struct{})
	release := func(d scene.Disposable) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		d.Dispose()
	}
	e.Scene.Traverse(func(o scene.Object) {
		m, ok := o.(*scene.Mesh)
		if !ok {
			return
		}
		if m.Geometry != nil {
			release(m.Geometry)
		}
		if m.Material != nil {
			release(m.Material)
		}
	})
	for _, d := range e.World.Owned() {
		release(d)
	}

	e.Camera.Controls.Dispose()
	e.Renderer.Backend.Dispose()
	e.Debug.Dispose()

	e.log.Info("experience destroyed", zap.Int("disposed", len(seen)))
}

// Destroyed reports whether Destroy has run.
func (e *Experience) Destroyed() bool { return e.destroyed }
