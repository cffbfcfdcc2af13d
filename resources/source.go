package resources

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the closed set of asset types the loader can dispatch.
type Kind int

const (
	KindTexture Kind = iota + 1
	KindCubeTexture
	KindModel
)

var kindNames = map[Kind]string{
	KindTexture:     "texture",
	KindCubeTexture: "cubeTexture",
	KindModel:       "gltfModel",
}

// aliases accepted in manifests, all lowercased
var kindAliases = map[string]Kind{
	"texture":      KindTexture,
	"cubetexture":  KindCubeTexture,
	"cube-texture": KindCubeTexture,
	"gltfmodel":    KindModel,
	"gltf":         KindModel,
	"model":        KindModel,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a manifest type string to a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Source describes one file-based asset. Cube textures carry six paths in
// +X, -X, +Y, -Y, +Z, -Z order; everything else carries one.
type Source struct {
	Name  string
	Kind  Kind
	Paths []string
}

// Path returns the first path.
func (s Source) Path() string {
	if len(s.Paths) == 0 {
		return ""
	}
	return s.Paths[0]
}

// Validate checks the path count against the kind.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNoName
	}
	want := 1
	switch s.Kind {
	case KindTexture, KindModel:
	case KindCubeTexture:
		want = 6
	default:
		return fmt.Errorf("%w: source %q has %v", ErrUnknownKind, s.Name, s.Kind)
	}
	if len(s.Paths) != want {
		return fmt.Errorf("%w: source %q (%v) needs %d path(s), got %d", ErrPathCount, s.Name, s.Kind, want, len(s.Paths))
	}
	for i, p := range s.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: source %q path %d is empty", ErrPathCount, s.Name, i)
		}
	}
	return nil
}

type sourceYAML struct {
	Name string    `yaml:"name"`
	Type Kind      `yaml:"type"`
	Path yaml.Node `yaml:"path"`
}

func (s *Source) UnmarshalYAML(node *yaml.Node) error {
	var raw sourceYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.Kind = raw.Type
	s.Paths = nil

	switch raw.Path.Kind {
	case yaml.ScalarNode:
		var p string
		if err := raw.Path.Decode(&p); err != nil {
			return err
		}
		s.Paths = []string{p}
	case yaml.SequenceNode:
		if err := raw.Path.Decode(&s.Paths); err != nil {
			return err
		}
	case 0:
	default:
		return fmt.Errorf("resources: source %q: path must be a string or a list", raw.Name)
	}
	return nil
}

func (s Source) MarshalYAML() (any, error) {
	out := map[string]any{"name": s.Name, "type": s.Kind.String()}
	if s.Kind == KindCubeTexture {
		out["path"] = s.Paths
	} else {
		out["path"] = s.Path()
	}
	return out, nil
}
