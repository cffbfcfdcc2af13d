package experience

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/experience/scene"
	"github.com/milk9111/experience/world"
)

// DefaultConfig is the embedded configuration name.
const DefaultConfig = "experience.yaml"

//go:embed experience.yaml
var configFS embed.FS

var (
	ErrInvalidConfig = errors.New("experience: invalid config")
	ErrUnknownColor  = errors.New("experience: unknown color")
)

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Resources ResourcesConfig `yaml:"resources"`
	World     WorldConfig     `yaml:"world"`
	Debug     DebugConfig     `yaml:"debug"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position scene.Vec3 `yaml:"position"`
	Damping  bool       `yaml:"damping"`
}

type RendererConfig struct {
	// ClearColor is a CSS color name or #rrggbb.
	ClearColor    string  `yaml:"clear_color"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
}

type ResourcesConfig struct {
	Manifest string        `yaml:"manifest"`
	Root     string        `yaml:"root"`
	Timeout  time.Duration `yaml:"timeout"`
}

type WorldConfig struct {
	Sources         world.Sources `yaml:"sources"`
	FoxFade         time.Duration `yaml:"fox_fade"`
	EnvMapIntensity float64       `yaml:"env_map_intensity"`
	Physics         bool          `yaml:"physics"`
}

type DebugConfig struct {
	Active bool `yaml:"active"`
	// Scripts is a directory of .tengo files run whenever they change.
	Scripts string `yaml:"scripts"`
}

// LoadConfig reads name from disk, falling back to the embedded default when
// name is the default and no such file exists.
func LoadConfig(name string) (Config, error) {
	if name == "" {
		name = DefaultConfig
	}
	base, err := embeddedConfig()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if filepath.Base(name) != DefaultConfig {
			return Config{}, fmt.Errorf("experience: load config %s: %w", name, err)
		}
		return base, nil
	}
	cfg, err := parseConfig(data, base)
	if err != nil {
		return Config{}, fmt.Errorf("experience: parse config %s: %w", name, err)
	}
	return cfg, nil
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := embeddedConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

func embeddedConfig() (Config, error) {
	data, err := configFS.ReadFile(DefaultConfig)
	if err != nil {
		return Config{}, fmt.Errorf("experience: load embedded config: %w", err)
	}
	return parseConfig(data, Config{})
}

// parseConfig overlays data onto base so a partial file only overrides the
// keys it names.
func parseConfig(data []byte, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the experience cannot start with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera fov=%v near=%v far=%v", ErrInvalidConfig, c.Camera.FOV, c.Camera.Near, c.Camera.Far)
	}
	if _, err := ParseColor(c.Renderer.ClearColor); err != nil {
		return err
	}
	return nil
}

// ParseColor resolves a color name from colornames or a #rrggbb literal.
// The empty string is black.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return colornames.Black, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}
