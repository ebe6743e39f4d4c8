package entity

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/prefabs"
	"gopkg.in/yaml.v3"
)

func decodeScene(t *testing.T, src string) prefabs.SceneSpec {
	t.Helper()
	var spec prefabs.SceneSpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("unmarshal scene: %v", err)
	}
	return spec
}

func TestBuildSceneFromEmbeddedPrefab(t *testing.T) {
	w := ecs.NewWorld()
	entities, err := BuildScene(w, prefabs.SceneFile)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	if len(entities) != 6 {
		t.Fatalf("entities = %d, want 6", len(entities))
	}

	cam, ok := ecs.First(w, component.OrbitCameraTagComponent.Kind())
	if !ok {
		t.Fatalf("expected an orbit camera")
	}
	tag, _ := ecs.Get(w, cam, component.OrbitCameraTagComponent.Kind())
	if tag.Distance != 10 || tag.TargetName != "target" {
		t.Fatalf("unexpected orbit camera %+v", tag)
	}
	rot, ok := ecs.Get(w, cam, component.FreeRotationComponent.Kind())
	if !ok || math.Abs(rot.Yaw-math.Pi/6) > 1e-12 || rot.HomePitch != rot.Pitch {
		t.Fatalf("unexpected free rotation %+v", rot)
	}
	if !ecs.Has(w, cam, component.CameraComponent.Kind()) {
		t.Fatalf("expected camera component")
	}

	meshes := 0
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, m *component.Mesh) {
		meshes++
		if m.Data.Triangles() == 0 {
			t.Fatalf("mesh without triangles")
		}
	})
	if meshes != 4 {
		t.Fatalf("meshes = %d, want 4", meshes)
	}

	scripts := 0
	ecs.ForEach(w, component.ScriptComponent.Kind(), func(_ ecs.Entity, s *component.Script) {
		scripts++
		if _, err := prefabs.LoadScript(s.Path); err != nil {
			t.Fatalf("load script %s: %v", s.Path, err)
		}
	})
	if scripts != 2 {
		t.Fatalf("scripts = %d, want 2", scripts)
	}
}

func TestBuildEntityTransform(t *testing.T) {
	spec := decodeScene(t, `
entities:
  - name: box
    components:
      transform:
        position: [1, 2, 3]
        rotation: {yaw: 90}
        scale: [2, 2, 2]
`)
	w := ecs.NewWorld()
	e, err := BuildEntity(w, spec.Entities[0], "test.yaml")
	if err != nil {
		t.Fatalf("build entity: %v", err)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position != (mgl64.Vec3{1, 2, 3}) || tr.Scale != (mgl64.Vec3{2, 2, 2}) {
		t.Fatalf("unexpected transform %+v", tr)
	}
	if !tr.Forward().ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-9) {
		t.Fatalf("forward = %v, want (-1,0,0)", tr.Forward())
	}
	name, ok := ecs.Get(w, e, component.NameComponent.Kind())
	if !ok || name.Value != "box" {
		t.Fatalf("expected name from entity block, got %+v", name)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown component",
			src:  "entities:\n  - name: a\n    components:\n      rigid_body: {}\n",
			want: `no builder for component "rigid_body"`,
		},
		{
			name: "unknown shape",
			src:  "entities:\n  - name: a\n    components:\n      mesh: {shape: torus}\n",
			want: `unknown mesh shape "torus"`,
		},
		{
			name: "orbit camera without transform",
			src:  "entities:\n  - name: a\n    components:\n      orbit_camera: {distance: 3}\n",
			want: "requires transform",
		},
		{
			name: "non positive distance",
			src:  "entities:\n  - name: a\n    components:\n      transform: {}\n      orbit_camera: {distance: 0}\n",
			want: "distance must be positive",
		},
		{
			name: "bad camera clip",
			src:  "entities:\n  - name: a\n    components:\n      camera: {near: 5, far: 1}\n",
			want: "clip range",
		},
		{
			name: "script without path",
			src:  "entities:\n  - name: a\n    components:\n      transform: {}\n      script: {}\n",
			want: "script path is required",
		},
		{
			name: "bad color",
			src:  "entities:\n  - name: a\n    components:\n      mesh: {shape: cube, color: notacolor}\n",
			want: "invalid color",
		},
		{
			name: "no components",
			src:  "entities:\n  - name: a\n",
			want: "does not define components",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := decodeScene(t, tc.src)
			w := ecs.NewWorld()
			_, err := BuildEntity(w, spec.Entities[0], "test.yaml")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want containing %q", err, tc.want)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("live entities = %d, want 0", n)
			}
		})
	}
}

func TestBuildSceneSpecRollsBack(t *testing.T) {
	spec := decodeScene(t, `
entities:
  - name: ok
    components:
      transform: {}
  - name: broken
    components:
      mesh: {shape: cone}
`)
	w := ecs.NewWorld()
	if _, err := BuildSceneSpec(w, spec, "test.yaml"); err == nil {
		t.Fatalf("expected error")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("live entities = %d, want 0", n)
	}
}
