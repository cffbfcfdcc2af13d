package scene

import (
	"image"
	"image/color"
	"math"
)

// Disposable is a GPU-side resource that must be released explicitly.
type Disposable interface {
	Dispose()
}

// Texture is a decoded 2D image.
type Texture struct {
	Name  string
	Image image.Image
	SRGB  bool
	// RepeatU and RepeatV tile the texture across a surface.
	RepeatU, RepeatV float64
}

// Cube face order: +X, -X, +Y, -Y, +Z, -Z.
const CubeFaces = 6

// CubeTexture is six square faces forming an environment map.
type CubeTexture struct {
	Name  string
	Faces [CubeFaces]image.Image
	SRGB  bool
}

// Geometry holds vertex data.
type Geometry struct {
	Name     string
	Vertices []Vec3

	disposals int
}

// Dispose drops the vertex data on the first call. Every call is counted so
// callers can verify a buffer is released exactly once.
func (g *Geometry) Dispose() {
	if g == nil {
		return
	}
	if g.disposals == 0 {
		g.Vertices = nil
	}
	g.disposals++
}

// Disposed reports whether the vertex data has been released.
func (g *Geometry) Disposed() bool { return g != nil && g.disposals > 0 }

// Disposals reports how many times Dispose was called.
func (g *Geometry) Disposals() int { return g.disposals }

// MaterialKind selects the shading model.
type MaterialKind int

const (
	MaterialStandard MaterialKind = iota
	MaterialBasic
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Name            string
	Kind            MaterialKind
	Color           color.Color
	Map             *Texture
	NormalMap       *Texture
	EnvMap          *CubeTexture
	EnvMapIntensity float64
	Metalness       float64
	Roughness       float64

	// NeedsUpdate asks the renderer to rebuild cached shading state.
	NeedsUpdate bool

	disposals int
}

// Dispose drops the texture maps on the first call. Textures may be shared
// with other materials, so they are detached rather than cleared.
func (m *Material) Dispose() {
	if m == nil {
		return
	}
	if m.disposals == 0 {
		m.Map, m.NormalMap, m.EnvMap = nil, nil, nil
		m.NeedsUpdate = false
	}
	m.disposals++
}

// Disposed reports whether the material has been released.
func (m *Material) Disposed() bool { return m != nil && m.disposals > 0 }

// Disposals reports how many times Dispose was called.
func (m *Material) Disposals() int { return m.disposals }

// Mesh is a renderable geometry plus material.
type Mesh struct {
	Node
	Geometry *Geometry
	Material *Material
}

// NewMesh creates a visible mesh.
func NewMesh(name string, g *Geometry, m *Material) *Mesh {
	return &Mesh{Node: NewNode(name), Geometry: g, Material: m}
}

// BoxGeometry returns the eight corners of a unit box scaled to w, h, d.
func BoxGeometry(w, h, d float64) *Geometry {
	hw, hh, hd := w/2, h/2, d/2
	return &Geometry{
		Name: "box",
		Vertices: []Vec3{
			{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
			{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
		},
	}
}

// SphereGeometry returns a ring of points around three great circles.
func SphereGeometry(radius float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Name: "sphere"}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		s, c := math.Sin(a)*radius, math.Cos(a)*radius
		g.Vertices = append(g.Vertices, Vec3{c, s, 0}, Vec3{c, 0, s}, Vec3{0, c, s})
	}
	return g
}

// CircleGeometry returns a flat disc outline in the XZ plane.
func CircleGeometry(radius float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Name: "circle"}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		g.Vertices = append(g.Vertices, Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius})
	}
	return g
}
