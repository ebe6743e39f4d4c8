package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
)

// ArcBallControlSystem places every orbit camera on a sphere of radius
// Distance around its target, oriented by FreeRotation when present.
type ArcBallControlSystem struct {
	targets map[string]ecs.Entity
}

func NewArcBallControlSystem() *ArcBallControlSystem {
	return &ArcBallControlSystem{targets: make(map[string]ecs.Entity)}
}

func (s *ArcBallControlSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.OrbitCameraTagComponent.Kind(), func(e ecs.Entity, camTransform *component.Transform, tag *component.OrbitCameraTag) {
		var yaw, pitch float64
		if rot, ok := ecs.Get(w, e, component.FreeRotationComponent.Kind()); ok {
			yaw, pitch = rot.Yaw, rot.Pitch
		} else {
			yaw, pitch, _ = camTransform.Euler()
		}

		target := mgl64.Vec3{}
		if t, ok := s.targetTransform(w, tag.TargetName); ok {
			target = t.Position
		}

		rotation := component.EulerQuat(yaw, pitch, 0)
		camTransform.Rotation = rotation
		camTransform.Position = target.Add(rotation.Rotate(mgl64.Vec3{0, 0, tag.Distance}))
	})
}

func (s *ArcBallControlSystem) targetTransform(w *ecs.World, name string) (*component.Transform, bool) {
	if name == "" {
		return nil, false
	}

	if e, ok := s.targets[name]; ok {
		n, named := ecs.Get(w, e, component.NameComponent.Kind())
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if named && ok && n.Value == name {
			return t, true
		}
		delete(s.targets, name)
	}

	e, ok := findEntityByName(w, name)
	if !ok {
		return nil, false
	}
	s.targets[name] = e
	return ecs.Get(w, e, component.TransformComponent.Kind())
}

func findEntityByName(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}
