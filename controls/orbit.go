// Package controls moves a camera in response to user input.
package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/experience/common"
	"github.com/milk9111/experience/scene"
)

const (
	minPolar = 0.01
	maxPolar = math.Pi - 0.01
)

// Orbit rotates a camera around a target on a sphere. With damping enabled,
// input deltas bleed into the camera over several Update calls.
type Orbit struct {
	Target        scene.Vec3
	EnableDamping bool
	DampingFactor float64
	MinDistance   float64
	MaxDistance   float64

	camera *scene.PerspectiveCamera

	theta  float64
	phi    float64
	radius float64

	dTheta float64
	dPhi   float64
	dScale float64

	disposals int
}

// NewOrbit derives the orbit from the camera's current position relative to
// its target.
func NewOrbit(camera *scene.PerspectiveCamera) *Orbit {
	o := &Orbit{
		camera:        camera,
		Target:        camera.Target,
		DampingFactor: 0.05,
		MaxDistance:   math.Inf(1),
		dScale:        1,
	}
	if offset := camera.Position.Sub(o.Target); offset.Len() > 0 {
		o.radius, o.phi, o.theta = mgl64.CartesianToSpherical(toPolarAxis(offset))
	}
	return o
}

// mgl64's spherical helpers measure inclination from +Z. The orbit measures
// it from +Y with azimuth 0 on +Z, so axes rotate by one place.
func toPolarAxis(v scene.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.Z, v.X, v.Y} }

func fromPolarAxis(v mgl64.Vec3) scene.Vec3 { return scene.Vec3{X: v[1], Y: v[2], Z: v[0]} }

// Rotate queues a rotation in radians: azimuth then polar.
func (o *Orbit) Rotate(azimuth, polar float64) {
	o.dTheta += azimuth
	o.dPhi += polar
}

// Zoom queues a dolly; factors below 1 move closer.
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.dScale *= factor
}

// Update applies queued input and repositions the camera.
func (o *Orbit) Update() {
	if o == nil || o.camera == nil {
		return
	}

	step := 1.0
	if o.EnableDamping {
		step = common.Clamp(o.DampingFactor, 0, 1)
	}

	o.theta += o.dTheta * step
	o.phi = common.Clamp(o.phi+o.dPhi*step, minPolar, maxPolar)
	o.radius = common.Clamp(o.radius*math.Pow(o.dScale, step), o.MinDistance, o.MaxDistance)

	if o.EnableDamping {
		o.dTheta *= 1 - step
		o.dPhi *= 1 - step
		o.dScale = math.Pow(o.dScale, 1-step)
	} else {
		o.dTheta, o.dPhi, o.dScale = 0, 0, 1
	}

	offset := fromPolarAxis(mgl64.SphericalToCartesian(o.radius, o.phi, o.theta))
	o.camera.Position = o.Target.Add(offset)
	o.camera.LookAt(o.Target)
}

// Distance is the current orbit radius.
func (o *Orbit) Distance() float64 { return o.radius }

// Dispose detaches the controls from input.
func (o *Orbit) Dispose() {
	if o == nil {
		return
	}
	o.disposals++
}

// Disposals reports how many times Dispose was called.
func (o *Orbit) Disposals() int { return o.disposals }
