package experience

import (
	"image/color"

	"github.com/milk9111/experience/host"
	"github.com/milk9111/experience/render"
	"github.com/milk9111/experience/scene"
)

// Renderer draws the scene through a backend once per frame.
type Renderer struct {
	Backend render.Backend

	sizes  *host.Sizes
	scene  *scene.Scene
	camera *Camera
}

func NewRenderer(backend render.Backend, sizes *host.Sizes, s *scene.Scene, camera *Camera, clear color.Color) *Renderer {
	r := &Renderer{Backend: backend, sizes: sizes, scene: s, camera: camera}
	backend.SetClearColor(clear)
	r.Resize()
	return r
}

// Resize matches the output surface to the viewport.
func (r *Renderer) Resize() {
	r.Backend.SetSize(r.sizes.Width(), r.sizes.Height())
	r.Backend.SetPixelRatio(r.sizes.PixelRatio())
}

// Update renders one frame.
func (r *Renderer) Update() {
	r.Backend.Render(r.scene, r.camera.Instance)
}
