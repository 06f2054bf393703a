package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/locomotion"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const (
	PlayerSpecFile  = "player.yaml"
	GravitySpecFile = "gravity.yaml"
	CameraSpecFile  = "camera.yaml"
)

type PlayerSpec struct {
	Name         string     `yaml:"name"`
	JumpStrength float64    `yaml:"jump_strength"`
	WalkStep     float64    `yaml:"walk_step"`
	AirAlignRate float64    `yaml:"air_align_rate"`
	TieBreak     string     `yaml:"tie_break"`
	Collider     Collider   `yaml:"collider"`
	Mass         float64    `yaml:"mass"`
	Friction     float64    `yaml:"friction"`
	SensorRadius float64    `yaml:"sensor_radius"`
	Color        *YAMLColor `yaml:"color"`
}

type Collider struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LocomotionConfig converts the tuning into a character config. An empty
// tie_break means first contact.
func (s PlayerSpec) LocomotionConfig() (locomotion.Config, error) {
	tb, ok := locomotion.ParseTieBreak(s.TieBreak)
	if !ok {
		return locomotion.Config{}, fmt.Errorf("prefabs: %s: unknown tie_break %q", PlayerSpecFile, s.TieBreak)
	}
	return locomotion.Config{
		JumpStrength: s.JumpStrength,
		WalkStep:     s.WalkStep,
		AirAlignRate: s.AirAlignRate,
		TieBreak:     tb,
	}, nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// GravitySpec holds the field constants shared by every planet.
type GravitySpec struct {
	gravity.Config `yaml:",inline"`
	// StarColor and PlanetColor tint the debug renderer.
	PlanetColor *YAMLColor `yaml:"planet_color"`
	StarColor   *YAMLColor `yaml:"star_color"`
}

func LoadGravitySpec() (*GravitySpec, error) {
	spec, err := LoadSpec[GravitySpec](GravitySpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name          string  `yaml:"name"`
	Target        string  `yaml:"target"`
	Zoom          float64 `yaml:"zoom"`
	FollowSeconds float64 `yaml:"follow_seconds"`
	Easing        string  `yaml:"easing"`
	AlignToUp     bool    `yaml:"align_to_up"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraSpecFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns c as color.RGBA, or fallback when c is unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
