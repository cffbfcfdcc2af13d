package world

import (
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/experience/common"
	"github.com/milk9111/experience/debug"
	"github.com/milk9111/experience/events"
	"github.com/milk9111/experience/logging"
	"github.com/milk9111/experience/physics"
	"github.com/milk9111/experience/scene"
)

// EventHit fires with a volume in [0.1, 1] when a body lands hard.
const EventHit = "hit"

const (
	spawnHeight  = 3
	hitMinImpact = 1.5
	hitMinVolume = 0.1
)

// body pairs a simulated body with the mesh that shows it.
type body struct {
	body *physics.Body
	mesh *scene.Mesh
}

// Physics drops spheres and boxes onto the floor. Every spawned object of
// one shape shares a single geometry and material.
type Physics struct {
	*events.Emitter

	World *physics.World

	scene  *scene.Scene
	log    *zap.Logger
	rng    *rand.Rand
	bodies []body

	sphereGeometry *scene.Geometry
	boxGeometry    *scene.Geometry
	material       *scene.Material
}

func NewPhysics(s *scene.Scene, dbg *debug.Debug, log *zap.Logger) *Physics {
	log = logging.Or(log)
	p := &Physics{
		Emitter:        events.NewEmitter(),
		World:          physics.NewWorld(physics.Gravity),
		scene:          s,
		log:            log,
		rng:            rand.New(rand.NewSource(1)),
		sphereGeometry: scene.SphereGeometry(1, 20),
		boxGeometry:    scene.BoxGeometry(1, 1, 1),
		material: &scene.Material{
			Name:      "physics",
			Kind:      scene.MaterialStandard,
			Color:     colornames.Lightsteelblue,
			Metalness: 0.3,
			Roughness: 0.4,
		},
	}

	p.World.OnImpact = p.impact

	dbg.AddAction("physics", "createSphere", func() {
		p.CreateSphere(p.rng.Float64()*0.5, p.randomPosition())
	})
	dbg.AddAction("physics", "createBox", func() {
		size := p.rng.Float64()
		p.CreateBox(size, size, size, p.randomPosition())
	})
	dbg.AddAction("physics", "reset", p.Reset)
	return p
}

func (p *Physics) impact(speed float64) {
	if speed <= hitMinImpact {
		return
	}
	p.Trigger(EventHit, common.Clamp(p.rng.Float64(), hitMinVolume, 1))
}

func (p *Physics) randomPosition() scene.Vec3 {
	return scene.Vec3{X: (p.rng.Float64() - 0.5) * 3, Y: spawnHeight, Z: (p.rng.Float64() - 0.5) * 3}
}

// CreateSphere spawns a sphere of radius r at pos.
func (p *Physics) CreateSphere(r float64, pos scene.Vec3) *scene.Mesh {
	if r <= 0 {
		r = 0.1
	}
	mesh := scene.NewMesh("sphere", p.sphereGeometry, p.material)
	mesh.Scale = scene.Vec3{X: r, Y: r, Z: r}
	return p.track(p.World.AddSphere(r, pos), mesh)
}

// CreateBox spawns a box of the given extents at pos.
func (p *Physics) CreateBox(w, h, d float64, pos scene.Vec3) *scene.Mesh {
	if w <= 0 || h <= 0 || d <= 0 {
		w, h, d = 0.1, 0.1, 0.1
	}
	mesh := scene.NewMesh("box", p.boxGeometry, p.material)
	mesh.Scale = scene.Vec3{X: w, Y: h, Z: d}
	return p.track(p.World.AddBox(w, h, d, pos), mesh)
}

func (p *Physics) track(b *physics.Body, m *scene.Mesh) *scene.Mesh {
	m.CastShadow = true
	m.Position = b.Position()
	p.scene.Add(m)
	p.bodies = append(p.bodies, body{body: b, mesh: m})
	p.log.Debug("spawned", zap.String("shape", m.Name()), zap.Int("bodies", len(p.bodies)))
	return m
}

// Reset removes every spawned object. Shared geometry stays alive for later
// spawns.
func (p *Physics) Reset() {
	for _, b := range p.bodies {
		p.scene.Remove(b.mesh)
	}
	p.bodies = nil
	p.World.Reset()
}

// Owned returns the shared geometries and material. They outlive Reset, so
// the scene walk alone does not reach them once no object is spawned.
func (p *Physics) Owned() []scene.Disposable {
	return []scene.Disposable{p.sphereGeometry, p.boxGeometry, p.material}
}

// Len is the number of live bodies.
func (p *Physics) Len() int { return len(p.bodies) }

// Meshes returns the spawned meshes in spawn order.
func (p *Physics) Meshes() []*scene.Mesh {
	out := make([]*scene.Mesh, len(p.bodies))
	for i, b := range p.bodies {
		out[i] = b.mesh
	}
	return out
}

// Update steps the simulation by dt seconds and copies body state to meshes.
func (p *Physics) Update(dt float64) {
	p.World.Advance(dt)
	for _, b := range p.bodies {
		b.mesh.Position = b.body.Position()
		b.mesh.Rotation.Z = b.body.Angle()
	}
}
