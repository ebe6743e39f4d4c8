// Package config loads the window settings of the demo.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Display mirrors display.yaml. Every field can be overridden from the
// environment.
type Display struct {
	Title      string `yaml:"title" env:"ARCBALL_TITLE"`
	Width      int    `yaml:"width" env:"ARCBALL_WIDTH"`
	Height     int    `yaml:"height" env:"ARCBALL_HEIGHT"`
	Resizable  bool   `yaml:"resizable" env:"ARCBALL_RESIZABLE"`
	Fullscreen bool   `yaml:"fullscreen" env:"ARCBALL_FULLSCREEN"`
	VSync      bool   `yaml:"vsync" env:"ARCBALL_VSYNC"`
	TPS        int    `yaml:"tps" env:"ARCBALL_TPS"`
}

var ErrInvalidDisplay = errors.New("config: invalid display")

func DefaultDisplay() Display {
	return Display{
		Title:     "arcball",
		Width:     1280,
		Height:    720,
		Resizable: true,
		VSync:     true,
		TPS:       60,
	}
}

// LoadDisplay decodes data over the defaults and applies env overrides.
func LoadDisplay(data []byte) (Display, error) {
	cfg := DefaultDisplay()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Display{}, fmt.Errorf("config: unmarshal display: %w", err)
	}
	if err := ParseEnv(&cfg); err != nil {
		return Display{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Display{}, err
	}
	return cfg, nil
}

func (d Display) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDisplay, d.Width, d.Height)
	}
	if d.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidDisplay, d.TPS)
	}
	return nil
}

// Overrides holds command line values that win over display.yaml and the
// environment. Zero fields leave the loaded value alone.
type Overrides struct {
	Width  int
	Height int
}

func (o Overrides) Apply(d Display) Display {
	if o.Width > 0 {
		d.Width = o.Width
	}
	if o.Height > 0 {
		d.Height = o.Height
	}
	return d
}

// LoadDisplayWith loads data and then applies o, so a reload keeps the
// command line values.
func LoadDisplayWith(data []byte, o Overrides) (Display, error) {
	cfg, err := LoadDisplay(data)
	if err != nil {
		return Display{}, err
	}
	cfg = o.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return Display{}, err
	}
	return cfg, nil
}
