package resources

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/milk9111/experience/animation"
	"github.com/milk9111/experience/scene"
)

// GLTFDecoder decodes binary (.glb) and embedded-buffer (.gltf) models.
type GLTFDecoder struct{}

func (GLTFDecoder) DecodeModel(name string, data []byte) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: decode %s: %w", name, err)
	}

	b := &gltfBuilder{doc: doc, materials: make(map[int]*scene.Material)}
	root := scene.NewGroup(name)

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < len(doc.Scenes) {
		for _, ni := range doc.Scenes[sceneIdx].Nodes {
			if obj := b.node(ni, 0); obj != nil {
				root.Add(obj)
			}
		}
	}

	return &Model{Scene: root, Clips: gltfClips(doc)}, nil
}

// maxNodeDepth bounds recursion on malformed, cyclic node graphs.
const maxNodeDepth = 64

type gltfBuilder struct {
	doc       *gltf.Document
	materials map[int]*scene.Material
}

func (b *gltfBuilder) node(idx, depth int) scene.Object {
	if idx < 0 || idx >= len(b.doc.Nodes) || depth > maxNodeDepth {
		return nil
	}
	n := b.doc.Nodes[idx]
	g := scene.NewGroup(n.Name)
	g.Position = scene.Vec3{X: n.Translation[0], Y: n.Translation[1], Z: n.Translation[2]}
	if n.Scale != [3]float64{} {
		g.Scale = scene.Vec3{X: n.Scale[0], Y: n.Scale[1], Z: n.Scale[2]}
	}

	if n.Mesh != nil && *n.Mesh < len(b.doc.Meshes) {
		m := b.doc.Meshes[*n.Mesh]
		for pi, prim := range m.Primitives {
			g.Add(scene.NewMesh(fmt.Sprintf("%s.%d", m.Name, pi), b.geometry(m.Name, prim), b.material(prim.Material)))
		}
	}
	for _, ci := range n.Children {
		if child := b.node(ci, depth+1); child != nil {
			g.Add(child)
		}
	}
	return g
}

func (b *gltfBuilder) geometry(name string, prim *gltf.Primitive) *scene.Geometry {
	geo := &scene.Geometry{Name: name}
	idx, ok := prim.Attributes[gltf.POSITION]
	if !ok || idx >= len(b.doc.Accessors) {
		return geo
	}
	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[idx], nil)
	if err != nil {
		return geo
	}
	geo.Vertices = make([]scene.Vec3, len(positions))
	for i, p := range positions {
		geo.Vertices[i] = scene.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
	}
	return geo
}

// material shares one scene material per glTF material index.
func (b *gltfBuilder) material(idx *int) *scene.Material {
	key := -1
	if idx != nil {
		key = *idx
	}
	if m, ok := b.materials[key]; ok {
		return m
	}
	m := &scene.Material{Kind: scene.MaterialStandard, EnvMapIntensity: 1, Roughness: 1}
	if key >= 0 && key < len(b.doc.Materials) {
		m.Name = b.doc.Materials[key].Name
	}
	b.materials[key] = m
	return m
}

// gltfClips derives each animation's duration from its samplers' input
// accessor maxima.
func gltfClips(doc *gltf.Document) []animation.Clip {
	clips := make([]animation.Clip, 0, len(doc.Animations))
	for i, a := range doc.Animations {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("clip%d", i)
		}
		duration := 0.0
		for _, s := range a.Samplers {
			if s.Input < 0 || s.Input >= len(doc.Accessors) {
				continue
			}
			if hi := doc.Accessors[s.Input].Max; len(hi) > 0 && hi[0] > duration {
				duration = hi[0]
			}
		}
		clips = append(clips, animation.Clip{Name: name, Duration: duration})
	}
	return clips
}
