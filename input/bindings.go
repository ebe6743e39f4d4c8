package input

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Button is one physical control an action can be bound to. Exactly one of
// Key or Mouse is set.
type Button struct {
	Key   string `yaml:"key,omitempty"`
	Mouse string `yaml:"mouse,omitempty"`
}

func (b Button) String() string {
	if b.Key != "" {
		return "key:" + b.Key
	}
	return "mouse:" + b.Mouse
}

// MouseButton returns the parsed mouse button of b.
func (b Button) MouseButton() (MouseButton, bool) {
	switch strings.ToLower(b.Mouse) {
	case "left":
		return MouseLeft, true
	case "right":
		return MouseRight, true
	case "middle":
		return MouseMiddle, true
	}
	return 0, false
}

type Bindings struct {
	Actions map[string][]Button `yaml:"actions"`
}

// LoadBindings parses and validates a YAML bindings document.
func LoadBindings(data []byte) (*Bindings, error) {
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("input: unmarshal bindings: %w", err)
	}
	for _, name := range b.ActionNames() {
		buttons := b.Actions[name]
		if len(buttons) == 0 {
			return nil, fmt.Errorf("input: action %q has no buttons", name)
		}
		for _, btn := range buttons {
			switch {
			case btn.Key != "" && btn.Mouse != "":
				return nil, fmt.Errorf("input: action %q: button sets both key and mouse", name)
			case btn.Key == "" && btn.Mouse == "":
				return nil, fmt.Errorf("input: action %q: empty button", name)
			case btn.Mouse != "":
				if _, ok := btn.MouseButton(); !ok {
					return nil, fmt.Errorf("input: action %q: unknown mouse button %q", name, btn.Mouse)
				}
			}
		}
	}
	return &b, nil
}

// ActionNames returns the bound action names in sorted order.
func (b *Bindings) ActionNames() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.Actions))
	for name := range b.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
