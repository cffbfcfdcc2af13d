package world

import (
	"math"

	"github.com/milk9111/experience/scene"
)

const grassRepeat = 1.5

// Floor is a textured grass disc.
type Floor struct {
	Mesh *scene.Mesh
}

func NewFloor(s *scene.Scene, color, normal *scene.Texture) *Floor {
	if color != nil {
		color.SRGB = true
		color.RepeatU, color.RepeatV = grassRepeat, grassRepeat
	}
	if normal != nil {
		normal.RepeatU, normal.RepeatV = grassRepeat, grassRepeat
	}

	mat := &scene.Material{Name: "floor", Kind: scene.MaterialStandard, Map: color, NormalMap: normal, Roughness: 1}
	mesh := scene.NewMesh("floor", scene.CircleGeometry(5, 64), mat)
	mesh.Rotation.X = -math.Pi / 2
	mesh.ReceiveShadow = true
	s.Add(mesh)
	return &Floor{Mesh: mesh}
}
