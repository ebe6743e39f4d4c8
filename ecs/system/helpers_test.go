package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/input"
)

func newInputWorld() (*ecs.World, *ecs.EventChannel[input.Event]) {
	w := ecs.NewWorld()
	ch := input.Install(w)
	return w, ch
}

func spawnOrbitCamera(t *testing.T, w *ecs.World, distance float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(mgl64.Vec3{})
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.OrbitCameraTagComponent.Kind(), &component.OrbitCameraTag{Distance: distance}); err != nil {
		t.Fatalf("add orbit camera: %v", err)
	}
	return e
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
