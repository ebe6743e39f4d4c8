package system

import (
	"reflect"
	"testing"

	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/input"
)

type scriptedPoller struct {
	frames []InputSnapshot
}

func (p *scriptedPoller) Poll() InputSnapshot {
	if len(p.frames) == 0 {
		return InputSnapshot{}
	}
	snap := p.frames[0]
	p.frames = p.frames[1:]
	return snap
}

func TestInputSystem(t *testing.T) {
	bindings := &input.Bindings{Actions: map[string][]input.Button{
		"rotate":     {{Mouse: "left"}, {Mouse: "right"}},
		"reset_view": {{Key: "R"}},
	}}

	tests := []struct {
		name   string
		frames []InputSnapshot
		want   []input.Event
		held   map[string]bool
	}{
		{
			name:   "wheel up and down",
			frames: []InputSnapshot{{WheelY: 1}, {WheelY: -2}},
			want:   []input.Event{input.Wheel(input.ScrollUp), input.Wheel(input.ScrollDown)},
		},
		{
			name:   "horizontal wheel",
			frames: []InputSnapshot{{WheelX: 0.5}, {WheelX: -0.5}},
			want:   []input.Event{input.Wheel(input.ScrollRight), input.Wheel(input.ScrollLeft)},
		},
		{
			name:   "cursor motion after first sample",
			frames: []InputSnapshot{{CursorX: 10, CursorY: 10}, {CursorX: 13, CursorY: 6}, {CursorX: 13, CursorY: 6}},
			want:   []input.Event{input.Motion(3, -4)},
		},
		{
			name: "key binding",
			frames: []InputSnapshot{
				{PressedKeys: []string{"r"}},
				{ReleasedKeys: []string{"R"}},
			},
			want: []input.Event{
				{Kind: input.KeyPressed, Key: "r"},
				input.Action("reset_view", true),
				{Kind: input.KeyReleased, Key: "R"},
				input.Action("reset_view", false),
			},
		},
		{
			name:   "mouse binding stays held",
			frames: []InputSnapshot{{PressedButtons: []input.MouseButton{input.MouseRight}}},
			want: []input.Event{
				{Kind: input.MouseButtonPressed, Button: input.MouseRight},
				input.Action("rotate", true),
			},
			held: map[string]bool{"rotate": true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, ch := newInputWorld()
			reader := ch.RegisterReader()
			sys := NewInputSystem(&scriptedPoller{frames: tc.frames}, bindings)

			for range tc.frames {
				sys.Update(w)
			}

			got := ch.Read(reader)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("events = %+v, want %+v", got, tc.want)
			}

			state := ecs.MustResource(w, input.StateResource)
			for _, action := range bindings.ActionNames() {
				if state.Held(action) != tc.held[action] {
					t.Fatalf("held(%s) = %v, want %v", action, state.Held(action), tc.held[action])
				}
			}
		})
	}
}
