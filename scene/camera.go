package scene

import "github.com/go-gl/mathgl/mgl64"

// PerspectiveCamera projects world points onto a viewport.
type PerspectiveCamera struct {
	Node

	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64
	Target Vec3

	projection mgl64.Mat4
}

// NewPerspectiveCamera creates a camera looking at the origin.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Node:   NewNode("camera"),
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection rebuilds the projection matrix. Call it after changing
// FOV, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjection() {
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = 75
	}
	if c.Aspect <= 0 {
		c.Aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target Vec3) {
	c.Target = target
}

// View is the world-to-camera matrix.
func (c *PerspectiveCamera) View() mgl64.Mat4 {
	eye, center, up := c.Position.Mgl(), c.Target.Mgl(), Up.Mgl()
	forward := center.Sub(eye)
	if forward.Len() == 0 {
		center = eye.Sub(mgl64.Vec3{0, 0, 1})
		forward = center.Sub(eye)
	}
	if forward.Cross(up).Len() == 0 {
		up = mgl64.Vec3{0, 0, -1}
	}
	return mgl64.LookAtV(eye, center, up)
}

// Projection is the matrix built by the last UpdateProjection.
func (c *PerspectiveCamera) Projection() mgl64.Mat4 { return c.projection }

// Project maps a world point to viewport pixel coordinates for a w by h
// surface, y growing downwards. ok is false when the point is outside the
// near/far range.
func (c *PerspectiveCamera) Project(p Vec3, w, h int) (x, y, depth float64, ok bool) {
	view := c.View()
	depth = -view.Mul4x1(p.Mgl().Vec4(1)).Z()
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	win := mgl64.Project(p.Mgl(), view, c.projection, 0, 0, w, h)
	return win.X(), float64(h) - win.Y(), depth, true
}
