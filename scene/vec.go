package scene

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a point or direction in world space. It keeps named fields for
// config files and literals; the arithmetic is done in mgl64.
type Vec3 struct {
	X, Y, Z float64
}

// V3 converts an mgl64 vector.
func V3(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

// Mgl returns v as an mgl64 vector.
func (v Vec3) Mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func (v Vec3) Add(o Vec3) Vec3 { return V3(v.Mgl().Add(o.Mgl())) }

func (v Vec3) Sub(o Vec3) Vec3 { return V3(v.Mgl().Sub(o.Mgl())) }

func (v Vec3) Scale(s float64) Vec3 { return V3(v.Mgl().Mul(s)) }

// Mul multiplies component-wise.
func (v Vec3) Mul(o Vec3) Vec3 {
	return V3(mgl64.Scale3D(o.X, o.Y, o.Z).Mul4x1(v.Mgl().Vec4(1)).Vec3())
}

func (v Vec3) Dot(o Vec3) float64 { return v.Mgl().Dot(o.Mgl()) }

func (v Vec3) Cross(o Vec3) Vec3 { return V3(v.Mgl().Cross(o.Mgl())) }

func (v Vec3) Len() float64 { return v.Mgl().Len() }

// Normalize returns the unit vector, or the zero vector unchanged.
func (v Vec3) Normalize() Vec3 {
	if v.Len() == 0 {
		return v
	}
	return V3(v.Mgl().Normalize())
}

// One is the identity scale.
var One = Vec3{1, 1, 1}

// Up is the world up axis.
var Up = Vec3{0, 1, 0}
