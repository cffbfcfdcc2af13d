package scene

import "github.com/google/uuid"

// Object is anything that can live in the scene graph.
type Object interface {
	ID() uuid.UUID
	Name() string
	Children() []Object
	Add(children ...Object)
	Remove(children ...Object)
	Transform() *Node
}

// Node carries the transform and children shared by every scene object.
// Embed it to build new object kinds.
type Node struct {
	id       uuid.UUID
	name     string
	children []Object

	Position   Vec3
	Rotation   Vec3
	Scale      Vec3
	Visible    bool
	CastShadow bool
	// ReceiveShadow is honoured by meshes only.
	ReceiveShadow bool
}

// NewNode returns a visible node with identity scale.
func NewNode(name string) Node {
	return Node{id: uuid.New(), name: name, Scale: One, Visible: true}
}

func (n *Node) ID() uuid.UUID { return n.id }

func (n *Node) Name() string { return n.name }

func (n *Node) Transform() *Node { return n }

// Children returns a copy of the direct children.
func (n *Node) Children() []Object {
	return append([]Object(nil), n.children...)
}

func (n *Node) Add(children ...Object) {
	for _, c := range children {
		if c == nil {
			continue
		}
		n.children = append(n.children, c)
	}
}

func (n *Node) Remove(children ...Object) {
	for _, c := range children {
		for i, existing := range n.children {
			if existing.ID() == c.ID() {
				n.children = append(n.children[:i], n.children[i+1:]...)
				break
			}
		}
	}
}

// Group is a plain container node.
type Group struct {
	Node
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Node: NewNode(name)}
}

// Traverse walks root and its descendants depth-first, parents first.
func Traverse(root Object, fn func(Object)) {
	if root == nil || fn == nil {
		return
	}
	fn(root)
	for _, c := range root.Children() {
		Traverse(c, fn)
	}
}

// Find returns the first object named name under root.
func Find(root Object, name string) (Object, bool) {
	var found Object
	Traverse(root, func(o Object) {
		if found == nil && o.Name() == name {
			found = o
		}
	})
	return found, found != nil
}
