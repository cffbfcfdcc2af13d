// Package physics advances rigid bodies with Chipmunk. Simulation runs in the
// vertical X/Y plane; each body keeps its own fixed Z.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/experience/scene"
)

const (
	// Step is the fixed simulation step in seconds.
	Step = 1.0 / 60.0
	// MaxSubSteps caps catch-up work after a long frame.
	MaxSubSteps = 3
	// Gravity is earth gravity along -Y.
	Gravity = -9.82

	defaultFriction   = 0.1
	defaultElasticity = 0.7
	floorHalfWidth    = 100
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeFloor
)

// BodyKind is the collision shape of a body.
type BodyKind int

const (
	Sphere BodyKind = iota
	Box
)

// Body is a dynamic rigid body.
type Body struct {
	Kind BodyKind
	Z    float64
	Size scene.Vec3

	body  *cp.Body
	shape *cp.Shape
}

// Position returns the body's world position.
func (b *Body) Position() scene.Vec3 {
	p := b.body.Position()
	return scene.Vec3{X: p.X, Y: p.Y, Z: b.Z}
}

// Angle returns the rotation around Z in radians.
func (b *Body) Angle() float64 { return b.body.Angle() }

// Velocity returns the linear velocity.
func (b *Body) Velocity() scene.Vec3 {
	v := b.body.Velocity()
	return scene.Vec3{X: v.X, Y: v.Y}
}

// World owns the Chipmunk space, a static floor at y=0 and the dynamic bodies.
type World struct {
	// OnImpact, when set, receives the closing speed along the contact
	// normal of every new contact.
	OnImpact func(speed float64)

	space       *cp.Space
	floor       *cp.Shape
	bodies      []*Body
	accumulator float64
	steps       int
}

// NewWorld creates a space with gravity and a floor.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	floor := cp.NewSegment(space.StaticBody, cp.Vector{X: -floorHalfWidth, Y: 0}, cp.Vector{X: floorHalfWidth, Y: 0}, 0)
	floor.SetFriction(defaultFriction)
	floor.SetElasticity(defaultElasticity)
	floor.SetCollisionType(collisionTypeFloor)
	space.AddShape(floor)

	w := &World{space: space, floor: floor}
	for _, other := range []cp.CollisionType{collisionTypeFloor, collisionTypeBody} {
		handler := space.NewCollisionHandler(collisionTypeBody, other)
		handler.UserData = w
		handler.BeginFunc = impactBegin
	}
	return w
}

func impactBegin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	w, ok := userData.(*World)
	if !ok || w.OnImpact == nil {
		return true
	}
	a, b := arb.Bodies()
	speed := b.Velocity().Sub(a.Velocity()).Dot(arb.Normal())
	if speed < 0 {
		speed = -speed
	}
	w.OnImpact(speed)
	return true
}

// AddSphere adds a unit-mass sphere centred at pos.
func (w *World) AddSphere(radius float64, pos scene.Vec3) *Body {
	body := cp.NewBody(1, cp.MomentForCircle(1, 0, radius, cp.Vector{}))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	return w.add(&Body{Kind: Sphere, Z: pos.Z, Size: scene.Vec3{X: radius, Y: radius, Z: radius}}, body, shape, pos)
}

// AddBox adds a unit-mass box of the given extents centred at pos. Depth only
// affects rendering.
func (w *World) AddBox(width, height, depth float64, pos scene.Vec3) *Body {
	body := cp.NewBody(1, cp.MomentForBox(1, width, height))
	shape := cp.NewBox(body, width, height, 0)
	return w.add(&Body{Kind: Box, Z: pos.Z, Size: scene.Vec3{X: width, Y: height, Z: depth}}, body, shape, pos)
}

func (w *World) add(b *Body, body *cp.Body, shape *cp.Shape, pos scene.Vec3) *Body {
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	shape.SetFriction(defaultFriction)
	shape.SetElasticity(defaultElasticity)
	shape.SetCollisionType(collisionTypeBody)
	w.space.AddBody(body)
	w.space.AddShape(shape)
	b.body = body
	b.shape = shape
	w.bodies = append(w.bodies, b)
	return b
}

// Remove takes a body out of the simulation.
func (w *World) Remove(b *Body) {
	for i, existing := range w.bodies {
		if existing != b {
			continue
		}
		w.space.RemoveShape(b.shape)
		w.space.RemoveBody(b.body)
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		return
	}
}

// Reset removes every dynamic body.
func (w *World) Reset() {
	for len(w.bodies) > 0 {
		w.Remove(w.bodies[0])
	}
	w.accumulator = 0
}

// Advance runs as many fixed steps as dt seconds covers, up to MaxSubSteps,
// and returns how many ran.
func (w *World) Advance(dt float64) int {
	if dt <= 0 {
		return 0
	}
	w.accumulator += dt
	n := 0
	for w.accumulator >= Step && n < MaxSubSteps {
		w.space.Step(Step)
		w.accumulator -= Step
		n++
	}
	if n == MaxSubSteps && w.accumulator > Step {
		w.accumulator = 0
	}
	w.steps += n
	return n
}

// Bodies returns the live bodies.
func (w *World) Bodies() []*Body { return append([]*Body(nil), w.bodies...) }

// Steps is the total number of fixed steps taken.
func (w *World) Steps() int { return w.steps }
