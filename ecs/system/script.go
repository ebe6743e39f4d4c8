package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/prefabs"
)

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	disabled bool
}

// ScriptSystem runs each entity's tengo program once per tick. Programs see
// dt, time, params, and a mutable transform map whose x, y, z, yaw, pitch,
// and roll entries are written back after the run.
type ScriptSystem struct {
	load     func(path string) ([]byte, error)
	programs map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*scriptRuntime
}

func NewScriptSystem() *ScriptSystem {
	return &ScriptSystem{
		load:     prefabs.LoadScript,
		programs: make(map[string]*tengo.Compiled),
		runtimes: make(map[ecs.Entity]*scriptRuntime),
	}
}

// Invalidate drops cached programs so the next tick recompiles from source.
// An empty path invalidates everything.
func (s *ScriptSystem) Invalidate(path string) {
	for p := range s.programs {
		if path == "" || p == path {
			delete(s.programs, p)
		}
	}
	for e, rt := range s.runtimes {
		if path == "" || rt.path == path {
			delete(s.runtimes, e)
		}
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	var dt, elapsed float64
	if t, ok := ecs.GetResource(w, TimeResource); ok {
		dt, elapsed = t.Delta, t.Elapsed
	}

	seen := make(map[ecs.Entity]struct{}, len(s.runtimes))
	ecs.ForEach2(w, component.ScriptComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.Script, tr *component.Transform) {
		seen[e] = struct{}{}

		rt, err := s.runtime(e, sc.Path)
		if err != nil {
			log.Printf("script: entity=%s load %s: %v", e, sc.Path, err)
			s.runtimes[e] = &scriptRuntime{path: sc.Path, disabled: true}
			return
		}
		if rt.disabled {
			return
		}

		if err := rt.run(dt, elapsed, sc.Params, tr); err != nil {
			log.Printf("script: entity=%s run %s: %v", e, sc.Path, err)
			rt.disabled = true
		}
	})

	for e := range s.runtimes {
		if _, ok := seen[e]; !ok {
			delete(s.runtimes, e)
		}
	}
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == path {
		return rt, nil
	}

	program, ok := s.programs[path]
	if !ok {
		src, err := s.load(path)
		if err != nil {
			return nil, err
		}
		program, err = compileScript(src)
		if err != nil {
			return nil, err
		}
		s.programs[path] = program
	}

	rt := &scriptRuntime{path: path, compiled: program.Clone()}
	s.runtimes[e] = rt
	return rt, nil
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("dt", 0.0)
	_ = script.Add("time", 0.0)
	_ = script.Add("params", map[string]any{})
	_ = script.Add("transform", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

func (rt *scriptRuntime) run(dt, elapsed float64, params map[string]float64, tr *component.Transform) error {
	paramValues := make(map[string]tengo.Object, len(params))
	for k, v := range params {
		paramValues[k] = &tengo.Float{Value: v}
	}

	yaw, pitch, roll := tr.Euler()
	state := &tengo.Map{Value: map[string]tengo.Object{
		"x":     &tengo.Float{Value: tr.Position.X()},
		"y":     &tengo.Float{Value: tr.Position.Y()},
		"z":     &tengo.Float{Value: tr.Position.Z()},
		"yaw":   &tengo.Float{Value: yaw},
		"pitch": &tengo.Float{Value: pitch},
		"roll":  &tengo.Float{Value: roll},
	}}

	if err := rt.compiled.Set("dt", dt); err != nil {
		return err
	}
	if err := rt.compiled.Set("time", elapsed); err != nil {
		return err
	}
	if err := rt.compiled.Set("params", &tengo.ImmutableMap{Value: paramValues}); err != nil {
		return err
	}
	if err := rt.compiled.Set("transform", state); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return err
	}

	read := func(key string, fallback float64) float64 {
		if v, ok := tengo.ToFloat64(state.Value[key]); ok {
			return v
		}
		return fallback
	}
	tr.Position[0] = read("x", tr.Position.X())
	tr.Position[1] = read("y", tr.Position.Y())
	tr.Position[2] = read("z", tr.Position.Z())
	tr.Rotation = component.EulerQuat(read("yaw", yaw), read("pitch", pitch), read("roll", roll))
	return nil
}
