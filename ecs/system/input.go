package system

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/input"
)

// InputSnapshot is everything the input system needs from one poll.
type InputSnapshot struct {
	PressedKeys     []string
	ReleasedKeys    []string
	PressedButtons  []input.MouseButton
	ReleasedButtons []input.MouseButton
	CursorX         float64
	CursorY         float64
	WheelX          float64
	WheelY          float64
}

type InputPoller interface {
	Poll() InputSnapshot
}

// InputSystem turns polled device state into events on the world's input
// channel and keeps input.State in sync with the action bindings.
type InputSystem struct {
	poller   InputPoller
	bindings *input.Bindings

	hasCursor bool
	lastX     float64
	lastY     float64
	keys      []string
	buttons   []input.MouseButton
	events    []input.Event
}

func NewInputSystem(poller InputPoller, bindings *input.Bindings) *InputSystem {
	if poller == nil {
		poller = EbitenPoller{}
	}
	return &InputSystem{poller: poller, bindings: bindings}
}

// SetBindings swaps the action bindings, e.g. after input.yaml changes.
func (s *InputSystem) SetBindings(b *input.Bindings) {
	s.bindings = b
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	channel := ecs.MustResource(w, input.EventsResource)
	state := ecs.MustResource(w, input.StateResource)

	snap := s.poller.Poll()
	s.events = s.events[:0]

	for _, k := range snap.PressedKeys {
		s.events = append(s.events, input.Event{Kind: input.KeyPressed, Key: k})
	}
	for _, k := range snap.ReleasedKeys {
		s.events = append(s.events, input.Event{Kind: input.KeyReleased, Key: k})
	}
	for _, b := range snap.PressedButtons {
		s.events = append(s.events, input.Event{Kind: input.MouseButtonPressed, Button: b})
	}
	for _, b := range snap.ReleasedButtons {
		s.events = append(s.events, input.Event{Kind: input.MouseButtonReleased, Button: b})
	}

	if s.hasCursor {
		dx, dy := snap.CursorX-s.lastX, snap.CursorY-s.lastY
		if dx != 0 || dy != 0 {
			s.events = append(s.events, input.Motion(dx, dy))
		}
	}
	s.hasCursor = true
	s.lastX, s.lastY = snap.CursorX, snap.CursorY

	switch {
	case snap.WheelY > 0:
		s.events = append(s.events, input.Wheel(input.ScrollUp))
	case snap.WheelY < 0:
		s.events = append(s.events, input.Wheel(input.ScrollDown))
	}
	switch {
	case snap.WheelX > 0:
		s.events = append(s.events, input.Wheel(input.ScrollRight))
	case snap.WheelX < 0:
		s.events = append(s.events, input.Wheel(input.ScrollLeft))
	}

	for _, name := range s.bindings.ActionNames() {
		buttons := s.bindings.Actions[name]
		if !state.Held(name) && anyBound(buttons, snap.PressedKeys, snap.PressedButtons) {
			state.SetHeld(name, true)
			s.events = append(s.events, input.Action(name, true))
		} else if state.Held(name) && anyBound(buttons, snap.ReleasedKeys, snap.ReleasedButtons) {
			state.SetHeld(name, false)
			s.events = append(s.events, input.Action(name, false))
		}
	}

	channel.WriteAll(s.events)
}

func anyBound(buttons []input.Button, keys []string, mouse []input.MouseButton) bool {
	for _, btn := range buttons {
		if btn.Key != "" {
			for _, k := range keys {
				if strings.EqualFold(btn.Key, k) {
					return true
				}
			}
			continue
		}
		want, ok := btn.MouseButton()
		if !ok {
			continue
		}
		for _, m := range mouse {
			if m == want {
				return true
			}
		}
	}
	return false
}

// EbitenPoller reads the keyboard, mouse, and wheel through ebiten.
type EbitenPoller struct{}

var ebitenButtons = []struct {
	ebiten ebiten.MouseButton
	input  input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
}

func (EbitenPoller) Poll() InputSnapshot {
	var snap InputSnapshot
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		snap.PressedKeys = append(snap.PressedKeys, k.String())
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		snap.ReleasedKeys = append(snap.ReleasedKeys, k.String())
	}
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			snap.PressedButtons = append(snap.PressedButtons, b.input)
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			snap.ReleasedButtons = append(snap.ReleasedButtons, b.input)
		}
	}
	x, y := ebiten.CursorPosition()
	snap.CursorX, snap.CursorY = float64(x), float64(y)
	snap.WheelX, snap.WheelY = ebiten.Wheel()
	return snap
}
