package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	SceneFile    = "arc_ball_camera.yaml"
	DisplayFile  = "display.yaml"
	BindingsFile = "input.yaml"
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

// DecodeComponentSpec re-decodes a loosely typed component block into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type SceneSpec struct {
	Name     string            `yaml:"name"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](filename)
}

type TransformComponentSpec struct {
	Position [3]float64  `yaml:"position"`
	Rotation EulerSpec   `yaml:"rotation"`
	Scale    *[3]float64 `yaml:"scale"`
}

// EulerSpec is a rotation in degrees.
type EulerSpec struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
}

type MeshComponentSpec struct {
	Shape    string    `yaml:"shape"`
	Size     float64   `yaml:"size"`
	Radius   float64   `yaml:"radius"`
	Rings    int       `yaml:"rings"`
	Segments int       `yaml:"segments"`
	Color    YAMLColor `yaml:"color"`
}

type LightComponentSpec struct {
	Direction [3]float64 `yaml:"direction"`
	Color     YAMLColor  `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Ambient   *float64   `yaml:"ambient"`
}

type CameraComponentSpec struct {
	FovDegrees float64 `yaml:"fov_degrees"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
}

type OrbitCameraComponentSpec struct {
	Distance float64 `yaml:"distance"`
	Target   string  `yaml:"target"`
}

type FreeRotationComponentSpec struct {
	YawDegrees   float64 `yaml:"yaw_degrees"`
	PitchDegrees float64 `yaml:"pitch_degrees"`
	SensitivityX float64 `yaml:"sensitivity_x"`
	SensitivityY float64 `yaml:"sensitivity_y"`
}

type ScriptComponentSpec struct {
	Path   string             `yaml:"path"`
	Params map[string]float64 `yaml:"params"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// NRGBA returns the color or fallback when unset.
func (c YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func ParseColor(v string) (color.NRGBA, error) {
	if rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(v))]; ok {
		return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
