package controls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/experience/scene"
)

func newCamera() *scene.PerspectiveCamera {
	cam := scene.NewPerspectiveCamera(35, 1, 0.1, 100)
	cam.Position = scene.Vec3{X: 0, Y: 0, Z: 10}
	return cam
}

func TestOrbitUpdateKeepsDistance(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)

	o.Rotate(math.Pi/2, 0)
	o.Update()

	assert.InDelta(t, 10, cam.Position.Len(), 1e-9)
	assert.InDelta(t, 10, cam.Position.X, 1e-9)
	assert.InDelta(t, 0, cam.Position.Z, 1e-9)
	assert.Equal(t, scene.Vec3{}, cam.Target)
}

func TestOrbitDamping(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)
	o.EnableDamping = true
	o.DampingFactor = 0.5

	o.Rotate(1, 0)
	o.Update()
	first := math.Atan2(cam.Position.X, cam.Position.Z)
	o.Update()
	second := math.Atan2(cam.Position.X, cam.Position.Z)

	assert.InDelta(t, 0.5, first, 1e-9)
	assert.InDelta(t, 0.75, second, 1e-9)
}

func TestOrbitZoomClamp(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)
	o.MinDistance = 5
	o.MaxDistance = 20

	o.Zoom(0.1)
	o.Update()
	assert.InDelta(t, 5, o.Distance(), 1e-9)

	o.Zoom(100)
	o.Update()
	assert.InDelta(t, 20, o.Distance(), 1e-9)
}

func TestOrbitPolarClamp(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)

	o.Rotate(0, -10)
	o.Update()

	assert.Greater(t, cam.Position.Y, 9.9)
	assert.InDelta(t, 10, cam.Position.Len(), 1e-9)
}

func TestOrbitDispose(t *testing.T) {
	o := NewOrbit(newCamera())
	o.Dispose()
	assert.Equal(t, 1, o.Disposals())

	var nilOrbit *Orbit
	nilOrbit.Dispose()
	nilOrbit.Update()
}
