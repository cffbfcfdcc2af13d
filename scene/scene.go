// Package scene is the scene graph shared by the experience, its world
// entities and the render backends.
package scene

// Scene is the root of the scene graph.
type Scene struct {
	Node

	Background  *CubeTexture
	Environment *CubeTexture
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{Node: NewNode("scene")}
}

// Traverse walks every object in the scene, including the scene itself.
func (s *Scene) Traverse(fn func(Object)) {
	Traverse(s, fn)
}

// Meshes returns every mesh in the scene in traversal order.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	s.Traverse(func(o Object) {
		if m, ok := o.(*Mesh); ok {
			out = append(out, m)
		}
	})
	return out
}
