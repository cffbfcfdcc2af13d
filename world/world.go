// Package world holds the entities that populate the scene once the
// resources they depend on have loaded.
package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/experience/debug"
	"github.com/milk9111/experience/host"
	"github.com/milk9111/experience/resources"
	"github.com/milk9111/experience/scene"
)

// Sources names the manifest entries each entity reads.
type Sources struct {
	EnvironmentMap string `yaml:"environmentMap"`
	GrassColor     string `yaml:"grassColor"`
	GrassNormal    string `yaml:"grassNormal"`
	Fox            string `yaml:"fox"`
}

// DefaultSources matches the embedded manifest.
var DefaultSources = Sources{
	EnvironmentMap: "environmentMapTexture",
	GrassColor:     "grassColorTexture",
	GrassNormal:    "grassNormalTexture",
	Fox:            "foxModel",
}

// Deps are the shared parts of the experience the world works with.
type Deps struct {
	Scene     *scene.Scene
	Resources *resources.Resources
	Time      *host.Time
	Debug     *debug.Debug
}

// World is the entity collection. Entities are nil until resources are ready
// and stay nil if their source is missing from the manifest.
type World struct {
	Environment *Environment
	Floor       *Floor
	Fox         *Fox
	Physics     *Physics

	deps         Deps
	log          *zap.Logger
	sources      Sources
	fade         time.Duration
	envIntensity float64
	physics      bool
	built        bool
}

type Option func(*World)

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSources overrides the manifest names entities read. Empty names keep
// their defaults.
func WithSources(s Sources) Option {
	return func(w *World) {
		if s.EnvironmentMap != "" {
			w.sources.EnvironmentMap = s.EnvironmentMap
		}
		if s.GrassColor != "" {
			w.sources.GrassColor = s.GrassColor
		}
		if s.GrassNormal != "" {
			w.sources.GrassNormal = s.GrassNormal
		}
		if s.Fox != "" {
			w.sources.Fox = s.Fox
		}
	}
}

// WithFoxFade sets the fox cross-fade duration.
func WithFoxFade(d time.Duration) Option {
	return func(w *World) { w.fade = d }
}

// WithEnvMapIntensity sets how strongly the environment map lights
// standard materials.
func WithEnvMapIntensity(v float64) Option {
	return func(w *World) { w.envIntensity = v }
}

// WithPhysics toggles the falling-bodies demo.
func WithPhysics(on bool) Option {
	return func(w *World) { w.physics = on }
}

// New creates the world and defers entity construction to the resources
// ready event.
func New(deps Deps, opts ...Option) *World {
	w := &World{
		deps:         deps,
		log:          zap.NewNop(),
		sources:      DefaultSources,
		fade:         time.Second,
		envIntensity: defaultEnvMapIntensity,
		physics:      true,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.Named("world")

	if deps.Resources == nil {
		return w
	}
	if deps.Resources.Ready() {
		w.build()
		return w
	}
	deps.Resources.On(resources.EventReady, func(...any) { w.build() })
	return w
}

func (w *World) build() {
	if w.built {
		return
	}
	w.built = true
	res := w.deps.Resources

	if tex, ok := res.Texture(w.sources.GrassColor); ok {
		normal, _ := res.Texture(w.sources.GrassNormal)
		w.Floor = NewFloor(w.deps.Scene, tex, normal)
	}

	if model, ok := res.Model(w.sources.Fox); ok {
		fox, err := NewFox(w.deps.Scene, model, w.deps.Debug, w.fade, w.log.Named("fox"))
		if err != nil {
			w.log.Error("fox unavailable", zap.Error(err))
		} else {
			w.Fox = fox
		}
	}

	if w.physics {
		w.Physics = NewPhysics(w.deps.Scene, w.deps.Debug, w.log.Named("physics"))
	}

	// Environment last so every material already in the scene picks up the
	// map.
	env, _ := res.CubeTexture(w.sources.EnvironmentMap)
	w.Environment = NewEnvironment(w.deps.Scene, env, w.envIntensity, w.deps.Debug)

	w.log.Info("world ready",
		zap.Bool("floor", w.Floor != nil),
		zap.Bool("fox", w.Fox != nil),
		zap.Bool("physics", w.Physics != nil))
}

// Owned returns resources held by entities outside the scene graph.
func (w *World) Owned() []scene.Disposable {
	if w == nil || w.Physics == nil {
		return nil
	}
	return w.Physics.Owned()
}

// Ready reports whether entities have been built.
func (w *World) Ready() bool { return w != nil && w.built }

// Update advances the fox then physics. It does nothing before ready.
func (w *World) Update() {
	if w == nil || !w.built {
		return
	}
	var deltaMs float64
	if w.deps.Time != nil {
		deltaMs = w.deps.Time.DeltaMs()
	}
	if w.Fox != nil {
		w.Fox.Update(deltaMs)
	}
	if w.Physics != nil {
		w.Physics.Update(deltaMs / 1000)
	}
}
