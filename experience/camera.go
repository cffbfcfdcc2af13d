package experience

import (
	"github.com/milk9111/experience/controls"
	"github.com/milk9111/experience/host"
	"github.com/milk9111/experience/scene"
)

// Camera is the perspective camera plus its orbit controls.
type Camera struct {
	Instance *scene.PerspectiveCamera
	Controls *controls.Orbit

	sizes *host.Sizes
}

func NewCamera(sizes *host.Sizes, s *scene.Scene, cfg CameraConfig) *Camera {
	cam := scene.NewPerspectiveCamera(cfg.FOV, sizes.Aspect(), cfg.Near, cfg.Far)
	cam.Position = cfg.Position
	s.Add(cam)

	orbit := controls.NewOrbit(cam)
	orbit.EnableDamping = cfg.Damping
	return &Camera{Instance: cam, Controls: orbit, sizes: sizes}
}

// Resize matches the projection to the viewport.
func (c *Camera) Resize() {
	c.Instance.Aspect = c.sizes.Aspect()
	c.Instance.UpdateProjection()
}

// Update applies damped control input.
func (c *Camera) Update() {
	c.Controls.Update()
}
