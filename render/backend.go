// Package render is the drawing capability the experience calls into.
package render

import (
	"image/color"

	"github.com/milk9111/experience/scene"
)

// Backend renders a scene from a camera onto an output surface.
type Backend interface {
	SetSize(w, h int)
	SetPixelRatio(r float64)
	SetClearColor(c color.Color)
	Render(s *scene.Scene, camera *scene.PerspectiveCamera)
	Dispose()
}

// Headless renders nothing and records what it was asked to do.
type Headless struct {
	Width      int
	Height     int
	PixelRatio float64
	ClearColor color.Color
	Renders    int
	Disposals  int
	// LastMeshes is the number of meshes seen by the last Render.
	LastMeshes int
}

var _ Backend = (*Headless)(nil)

func (h *Headless) SetSize(w, hh int) {
	h.Width = w
	h.Height = hh
}

func (h *Headless) SetPixelRatio(r float64) { h.PixelRatio = r }

func (h *Headless) SetClearColor(c color.Color) { h.ClearColor = c }

func (h *Headless) Render(s *scene.Scene, _ *scene.PerspectiveCamera) {
	h.Renders++
	h.LastMeshes = len(s.Meshes())
}

func (h *Headless) Dispose() { h.Disposals++ }
