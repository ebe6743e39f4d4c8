package system

import (
	"math"

	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/input"
)

// RotateAction is the binding that must be held for mouse motion to turn
// the camera.
const RotateAction = "rotate"

var maxPitch = 89 * math.Pi / 180

type FreeRotationSystem struct {
	reader *ecs.ReaderID
}

func NewFreeRotationSystem() *FreeRotationSystem {
	return &FreeRotationSystem{}
}

func (s *FreeRotationSystem) Setup(w *ecs.World) {
	s.reader = ecs.MustResource(w, input.EventsResource).RegisterReader()
}

func (s *FreeRotationSystem) Update(w *ecs.World) {
	if s.reader == nil {
		panic("free rotation system: update before setup")
	}

	events := ecs.MustResource(w, input.EventsResource).Read(s.reader)
	state := ecs.MustResource(w, input.StateResource)
	if !state.Held(RotateAction) {
		return
	}

	var dx, dy float64
	for _, evt := range events {
		if evt.Kind == input.MouseMoved {
			dx += evt.DX
			dy += evt.DY
		}
	}
	if dx == 0 && dy == 0 {
		return
	}

	ecs.ForEach(w, component.FreeRotationComponent.Kind(), func(_ ecs.Entity, rot *component.FreeRotation) {
		rot.Yaw -= dx * rot.SensitivityX
		rot.Pitch -= dy * rot.SensitivityY
		rot.Pitch = math.Max(-maxPitch, math.Min(maxPitch, rot.Pitch))
	})
}
