package scene

import "image/color"

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light illuminates the scene. Directional lights may cast shadows.
type Light struct {
	Node
	Kind      LightKind
	Color     color.Color
	Intensity float64

	ShadowMapSize int
	ShadowFar     float64
	NormalBias    float64
}

// NewDirectionalLight creates a shadow-casting sun light.
func NewDirectionalLight(name string, c color.Color, intensity float64) *Light {
	l := &Light{
		Node:          NewNode(name),
		Kind:          LightDirectional,
		Color:         c,
		Intensity:     intensity,
		ShadowMapSize: 1024,
		ShadowFar:     15,
		NormalBias:    0.05,
	}
	l.CastShadow = true
	return l
}
