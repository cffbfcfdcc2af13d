package resources

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultManifest is the embedded manifest name.
const DefaultManifest = "sources.yaml"

//go:embed sources.yaml
var manifestFS embed.FS

type manifestYAML struct {
	Sources []Source `yaml:"sources"`
}

// LoadManifest reads a manifest from disk, falling back to the embedded copy
// when name is the default and no file exists on disk.
func LoadManifest(name string) ([]Source, error) {
	if name == "" {
		name = DefaultManifest
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if filepath.Base(name) != DefaultManifest {
			return nil, fmt.Errorf("resources: load manifest %s: %w", name, err)
		}
		data, err = manifestFS.ReadFile(DefaultManifest)
		if err != nil {
			return nil, fmt.Errorf("resources: load embedded manifest: %w", err)
		}
	}
	sources, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("resources: parse manifest %s: %w", name, err)
	}
	return sources, nil
}

// ParseManifest decodes and validates a YAML manifest. Names must be unique
// and every type must be known.
func ParseManifest(data []byte) ([]Source, error) {
	var m manifestYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if err := Validate(m.Sources); err != nil {
		return nil, err
	}
	return m.Sources, nil
}

// Validate checks every source and that names are unique.
func Validate(sources []Source) error {
	seen := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// MarshalManifest encodes sources back into manifest YAML.
func MarshalManifest(sources []Source) ([]byte, error) {
	return yaml.Marshal(manifestYAML{Sources: sources})
}
