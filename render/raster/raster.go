// Package raster draws scenes into an ebiten screen.
package raster

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/experience/render"
	"github.com/milk9111/experience/scene"
)

type point struct {
	x, y, depth float32
	c           color.Color
}

// Backend projects mesh vertices each Render and rasterizes them as points on
// the next Draw. Render runs during the game's Update, Draw during ebiten's
// draw pass.
type Backend struct {
	width      int
	height     int
	pixelRatio float64
	clear      color.Color
	points     []point
	disposed   bool
}

var _ render.Backend = (*Backend)(nil)

// New creates a backend for a w by h surface.
func New(w, h int) *Backend {
	return &Backend{width: w, height: h, pixelRatio: 1, clear: colornames.Black}
}

func (e *Backend) SetSize(w, h int) {
	e.width = w
	e.height = h
}

func (e *Backend) SetPixelRatio(r float64) { e.pixelRatio = r }

func (e *Backend) SetClearColor(c color.Color) {
	if c != nil {
		e.clear = c
	}
}

// Size returns the physical output size.
func (e *Backend) Size() (int, int) {
	return int(float64(e.width) * e.pixelRatio), int(float64(e.height) * e.pixelRatio)
}

func (e *Backend) Render(s *scene.Scene, camera *scene.PerspectiveCamera) {
	if e.disposed || s == nil || camera == nil {
		return
	}
	e.points = e.points[:0]
	w, h := e.Size()
	e.collect(s, scene.Vec3{}, scene.One, camera, w, h)
	// far to near so closer points overdraw
	sort.Slice(e.points, func(i, j int) bool { return e.points[i].depth > e.points[j].depth })
}

func (e *Backend) collect(o scene.Object, offset, scale scene.Vec3, camera *scene.PerspectiveCamera, w, h int) {
	n := o.Transform()
	if !n.Visible {
		return
	}
	worldPos := offset.Add(n.Position.Mul(scale))
	worldScale := scale.Mul(n.Scale)

	if m, ok := o.(*scene.Mesh); ok && m.Geometry != nil {
		c := color.Color(colornames.White)
		if m.Material != nil && m.Material.Color != nil {
			c = m.Material.Color
		}
		for _, v := range m.Geometry.Vertices {
			x, y, d, ok := camera.Project(worldPos.Add(v.Mul(worldScale)), w, h)
			if !ok {
				continue
			}
			e.points = append(e.points, point{x: float32(x), y: float32(y), depth: float32(d), c: c})
		}
	}
	for _, c := range o.Children() {
		e.collect(c, worldPos, worldScale, camera, w, h)
	}
}

// Draw rasterizes the last rendered frame onto screen.
func (e *Backend) Draw(screen *ebiten.Image) {
	if e.disposed {
		return
	}
	screen.Fill(e.clear)
	radius := float32(1.5 * e.pixelRatio)
	for _, p := range e.points {
		vector.DrawFilledCircle(screen, p.x, p.y, radius, p.c, true)
	}
}

// Points returns how many vertices the last Render projected.
func (e *Backend) Points() int { return len(e.points) }

func (e *Backend) Dispose() {
	e.disposed = true
	e.points = nil
}
