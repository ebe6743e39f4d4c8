package entity

import (
	"fmt"

	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/prefabs"
)

// BuildScene builds every entity of a scene prefab. Nothing is left in the
// world when it fails.
func BuildScene(w *ecs.World, prefabPath string) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadSceneSpec(prefabPath)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return BuildSceneSpec(w, spec, prefabPath)
}

func BuildSceneSpec(w *ecs.World, spec prefabs.SceneSpec, prefabPath string) ([]ecs.Entity, error) {
	if len(spec.Entities) == 0 {
		return nil, fmt.Errorf("build scene: %q defines no entities", prefabPath)
	}

	built := make([]ecs.Entity, 0, len(spec.Entities))
	for i, entitySpec := range spec.Entities {
		e, err := BuildEntity(w, entitySpec, prefabPath)
		if err != nil {
			for _, prev := range built {
				ecs.DestroyEntity(w, prev)
			}
			return nil, fmt.Errorf("build scene: entity %d (%s): %w", i, entitySpec.Name, err)
		}
		built = append(built, e)
	}
	return built, nil
}
