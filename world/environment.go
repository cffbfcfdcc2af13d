package world

import (
	"golang.org/x/image/colornames"

	"github.com/milk9111/experience/common"
	"github.com/milk9111/experience/debug"
	"github.com/milk9111/experience/scene"
)

const (
	defaultEnvMapIntensity = 0.4
	maxEnvMapIntensity     = 10
	envMapIntensityStep    = 0.1
)

// Environment is the sun light plus the environment map applied to every
// standard material in the scene.
type Environment struct {
	Sun       *scene.Light
	Map       *scene.CubeTexture
	Intensity float64

	scene *scene.Scene
}

// NewEnvironment adds the sun and, when envMap is non-nil, sets it as the
// scene environment. The envIntensityUp and envIntensityDown debug actions
// step the map intensity within [0, 10].
func NewEnvironment(s *scene.Scene, envMap *scene.CubeTexture, intensity float64, dbg *debug.Debug) *Environment {
	sun := scene.NewDirectionalLight("sunLight", colornames.White, 4)
	sun.Position = scene.Vec3{X: 3.5, Y: 2, Z: -1.25}
	s.Add(sun)

	e := &Environment{Sun: sun, Map: envMap, Intensity: intensity, scene: s}
	if envMap != nil {
		envMap.SRGB = true
		s.Environment = envMap
	}
	e.UpdateMaterials()

	dbg.AddAction("environment", "envIntensityUp", func() {
		e.SetIntensity(e.Intensity + envMapIntensityStep)
	})
	dbg.AddAction("environment", "envIntensityDown", func() {
		e.SetIntensity(e.Intensity - envMapIntensityStep)
	})
	return e
}

// SetIntensity changes the map intensity, clamped to [0, 10], and reapplies
// it.
func (e *Environment) SetIntensity(v float64) {
	e.Intensity = common.Clamp(v, 0, maxEnvMapIntensity)
	e.UpdateMaterials()
}

// UpdateMaterials pushes the map onto every standard material.
func (e *Environment) UpdateMaterials() {
	if e.Map == nil {
		return
	}
	for _, m := range e.scene.Meshes() {
		mat := m.Material
		if mat == nil || mat.Kind != scene.MaterialStandard {
			continue
		}
		mat.EnvMap = e.Map
		mat.EnvMapIntensity = e.Intensity
		mat.NeedsUpdate = true
	}
}
