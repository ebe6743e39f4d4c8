package system

import (
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/input"
)

const (
	scrollInFactor  = 0.9
	scrollOutFactor = 1.1
)

// CameraDistanceSystem scales the orbit distance of every orbit camera on
// wheel input. Each scroll event is applied on its own.
type CameraDistanceSystem struct {
	reader *ecs.ReaderID
}

func NewCameraDistanceSystem() *CameraDistanceSystem {
	return &CameraDistanceSystem{}
}

func (s *CameraDistanceSystem) Setup(w *ecs.World) {
	s.reader = ecs.MustResource(w, input.EventsResource).RegisterReader()
}

func (s *CameraDistanceSystem) Update(w *ecs.World) {
	if s.reader == nil {
		panic("camera distance system: update before setup")
	}

	events := ecs.MustResource(w, input.EventsResource).Read(s.reader)
	for _, evt := range events {
		if evt.Kind != input.MouseWheelMoved {
			continue
		}

		var factor float64
		switch evt.Scroll {
		case input.ScrollUp:
			factor = scrollInFactor
		case input.ScrollDown:
			factor = scrollOutFactor
		default:
			continue
		}

		ecs.ForEach2(w, component.TransformComponent.Kind(), component.OrbitCameraTagComponent.Kind(), func(_ ecs.Entity, _ *component.Transform, tag *component.OrbitCameraTag) {
			tag.Distance *= factor
		})
	}
}
