package entity

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/mesh"
	"github.com/milk9111/arcball/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	EntityName string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":          addName,
	"transform":     addTransform,
	"mesh":          addMesh,
	"light":         addLight,
	"camera":        addCamera,
	"orbit_camera":  addOrbitCamera,
	"free_rotation": addFreeRotation,
	"script":        addScript,
}

var componentBuildOrder = []string{
	"name",
	"transform",
	"mesh",
	"light",
	"camera",
	"orbit_camera",
	"free_rotation",
	"script",
}

var defaultMeshColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

// BuildEntity creates one entity from a prefab entity block. The entity is
// destroyed again if any component fails to build.
func BuildEntity(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q: entity %q does not define components", prefabPath, spec.Name)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, EntityName: spec.Name}

	remaining := make(map[string]any, len(spec.Components)+1)
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if _, ok := remaining["name"]; !ok && spec.Name != "" {
		remaining["name"] = spec.Name
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	name, ok := raw.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must be a non-empty string")
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}

	t := component.NewTransform(mgl64.Vec3(spec.Position))
	t.Rotation = component.EulerQuat(radians(spec.Rotation.Yaw), radians(spec.Rotation.Pitch), radians(spec.Rotation.Roll))
	if spec.Scale != nil {
		t.Scale = mgl64.Vec3(*spec.Scale)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

func addMesh(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MeshComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}

	var data *mesh.Data
	switch strings.ToLower(spec.Shape) {
	case "cube":
		data = mesh.Cube(orDefault(spec.Size, 1))
	case "plane":
		data = mesh.Plane(orDefault(spec.Size, 1))
	case "sphere":
		rings, segments := spec.Rings, spec.Segments
		if rings == 0 {
			rings = 16
		}
		if segments == 0 {
			segments = 24
		}
		data, err = mesh.UVSphere(orDefault(spec.Radius, 1), rings, segments)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mesh shape %q", spec.Shape)
	}

	return ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Data:  data,
		Color: spec.Color.NRGBA(defaultMeshColor),
	})
}

func addLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LightComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode light spec: %w", err)
	}

	dir := mgl64.Vec3(spec.Direction)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, -1, 0}
	}
	ambient := 0.2
	if spec.Ambient != nil {
		ambient = *spec.Ambient
	}
	return ecs.Add(w, e, component.DirectionalLightComponent.Kind(), &component.DirectionalLight{
		Direction: dir.Normalize(),
		Color:     spec.Color.NRGBA(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Intensity: orDefault(spec.Intensity, 1),
		Ambient:   ambient,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}

	fov := orDefault(spec.FovDegrees, 60)
	near := orDefault(spec.Near, 0.1)
	far := orDefault(spec.Far, 1000)
	if fov <= 0 || fov >= 180 {
		return fmt.Errorf("camera fov_degrees %v out of range", fov)
	}
	if near <= 0 || far <= near {
		return fmt.Errorf("camera clip range [%v, %v] invalid", near, far)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Fovy: radians(fov),
		Near: near,
		Far:  far,
	})
}

func addOrbitCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.OrbitCameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit_camera spec: %w", err)
	}
	if spec.Distance <= 0 {
		return fmt.Errorf("orbit_camera distance must be positive, got %v", spec.Distance)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return fmt.Errorf("orbit_camera requires transform on the same entity")
	}
	return ecs.Add(w, e, component.OrbitCameraTagComponent.Kind(), &component.OrbitCameraTag{
		Distance:   spec.Distance,
		TargetName: spec.Target,
	})
}

func addFreeRotation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FreeRotationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode free_rotation spec: %w", err)
	}
	yaw, pitch := radians(spec.YawDegrees), radians(spec.PitchDegrees)
	return ecs.Add(w, e, component.FreeRotationComponent.Kind(), &component.FreeRotation{
		Yaw:          yaw,
		Pitch:        pitch,
		HomeYaw:      yaw,
		HomePitch:    pitch,
		SensitivityX: orDefault(spec.SensitivityX, 0.005),
		SensitivityY: orDefault(spec.SensitivityY, 0.005),
	})
}

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if strings.TrimSpace(spec.Path) == "" {
		return fmt.Errorf("script path is required")
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return fmt.Errorf("script requires transform on the same entity")
	}
	params := make(map[string]float64, len(spec.Params))
	for k, v := range spec.Params {
		params[k] = v
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: spec.Path, Params: params})
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
