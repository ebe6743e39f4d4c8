// Package input defines the events and bindings shared between the input
// system and the systems that react to it.
package input

import (
	"fmt"

	"github.com/milk9111/arcball/ecs"
)

type EventKind int

const (
	KeyPressed EventKind = iota + 1
	KeyReleased
	MouseButtonPressed
	MouseButtonReleased
	MouseMoved
	MouseWheelMoved
	ActionPressed
	ActionReleased
)

func (k EventKind) String() string {
	switch k {
	case KeyPressed:
		return "key_pressed"
	case KeyReleased:
		return "key_released"
	case MouseButtonPressed:
		return "mouse_button_pressed"
	case MouseButtonReleased:
		return "mouse_button_released"
	case MouseMoved:
		return "mouse_moved"
	case MouseWheelMoved:
		return "mouse_wheel_moved"
	case ActionPressed:
		return "action_pressed"
	case ActionReleased:
		return "action_released"
	}
	return fmt.Sprintf("event_kind(%d)", int(k))
}

type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota + 1
	ScrollDown
	ScrollLeft
	ScrollRight
)

type MouseButton int

const (
	MouseLeft MouseButton = iota + 1
	MouseRight
	MouseMiddle
)

// Event is one input occurrence. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Key    string
	Button MouseButton
	DX, DY float64
	Scroll ScrollDirection
	Action string
}

func Wheel(dir ScrollDirection) Event {
	return Event{Kind: MouseWheelMoved, Scroll: dir}
}

func Motion(dx, dy float64) Event {
	return Event{Kind: MouseMoved, DX: dx, DY: dy}
}

func Action(name string, pressed bool) Event {
	if pressed {
		return Event{Kind: ActionPressed, Action: name}
	}
	return Event{Kind: ActionReleased, Action: name}
}

// State tracks which actions are currently held.
type State struct {
	held map[string]bool
}

func (s *State) SetHeld(action string, held bool) {
	if s.held == nil {
		s.held = make(map[string]bool)
	}
	if held {
		s.held[action] = true
		return
	}
	delete(s.held, action)
}

func (s *State) Held(action string) bool {
	if s == nil {
		return false
	}
	return s.held[action]
}

var (
	EventsResource = ecs.NewResourceKind[ecs.EventChannel[Event]]("input events")
	StateResource  = ecs.NewResourceKind[State]("input state")
)

// Install inserts an empty event channel and input state into w.
func Install(w *ecs.World) *ecs.EventChannel[Event] {
	ch := ecs.NewEventChannel[Event]()
	ecs.SetResource(w, EventsResource, ch)
	ecs.SetResource(w, StateResource, &State{})
	return ch
}
