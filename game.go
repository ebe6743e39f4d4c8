package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/arcball/config"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/entity"
	"github.com/milk9111/arcball/ecs/system"
	"github.com/milk9111/arcball/hud"
	"github.com/milk9111/arcball/input"
	"github.com/milk9111/arcball/prefabs"
	"github.com/milk9111/arcball/render"
)

type Game struct {
	world     *ecs.World
	scenePath string
	display   config.Display
	overrides config.Overrides
	clock     *system.Time

	input    *system.InputSystem
	scripts  *system.ScriptSystem
	renderer *render.RenderingSystem
	hud      *hud.HUD
	watcher  *prefabs.Watcher
}

func NewGame(display config.Display, overrides config.Overrides, scenePath string, showHUD bool) (*Game, error) {
	bindings, err := loadBindings()
	if err != nil {
		return nil, err
	}

	overlay, err := hud.New(showHUD)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:     ecs.NewWorld(),
		scenePath: scenePath,
		display:   display,
		overrides: overrides,
		clock:     &system.Time{},
		input:     system.NewInputSystem(system.EbitenPoller{}, bindings),
		scripts:   system.NewScriptSystem(),
		renderer:  render.NewRenderingSystem(render.NewFactory(), render.NewSceneGraph()),
		hud:       overlay,
	}

	input.Install(g.world)
	ecs.SetResource(g.world, system.TimeResource, g.clock)

	g.world.AddSystem(g.input)
	g.world.AddSystem(system.NewCameraDistanceSystem())
	g.world.AddSystem(system.NewFreeRotationSystem())
	g.world.AddSystem(system.NewViewResetSystem())
	g.world.AddSystem(system.NewPoseClipboardSystem(nil))
	g.world.AddSystem(g.scripts)
	g.world.AddSystem(system.NewArcBallControlSystem())
	g.world.AddSystem(g.hud)
	g.world.Setup()

	if _, err := entity.BuildScene(g.world, scenePath); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g.watcher = startWatcher()
	return g, nil
}

func loadBindings() (*input.Bindings, error) {
	data, err := prefabs.Load(prefabs.BindingsFile)
	if err != nil {
		return nil, fmt.Errorf("game: load %s: %w", prefabs.BindingsFile, err)
	}
	return input.LoadBindings(data)
}

// startWatcher watches the on-disk prefab directory when there is one.
// Embedded-only runs have nothing to reload.
func startWatcher() *prefabs.Watcher {
	dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	var existing []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		log.Printf("prefab watcher disabled: %v", err)
		return nil
	}
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.renderer.Dispose()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.clock.Advance(1 / float64(ebiten.TPS()))
	g.drainWatcher()
	g.world.Update()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScene:
		if filepath.Base(change.Path) != filepath.Base(g.scenePath) {
			return
		}
		if err := g.reloadScene(); err != nil {
			log.Printf("reload scene: %v", err)
			return
		}
		log.Printf("reloaded %s", change.Path)
	case prefabs.ChangeBindings:
		bindings, err := loadBindings()
		if err != nil {
			log.Printf("reload bindings: %v", err)
			return
		}
		g.input.SetBindings(bindings)
		log.Printf("reloaded %s", change.Path)
	case prefabs.ChangeDisplay:
		data, err := prefabs.Load(prefabs.DisplayFile)
		if err == nil {
			g.display, err = config.LoadDisplayWith(data, g.overrides)
		}
		if err != nil {
			log.Printf("reload display: %v", err)
			return
		}
		applyDisplay(g.display)
		log.Printf("reloaded %s", change.Path)
	case prefabs.ChangeScript:
		g.scripts.Invalidate("")
		log.Printf("reloaded %s", change.Path)
	}
}

// reloadScene builds the new scene next to the old one and only removes the
// old entities once the new ones exist.
func (g *Game) reloadScene() error {
	old := ecs.Entities(g.world)
	if _, err := entity.BuildScene(g.world, g.scenePath); err != nil {
		return err
	}
	var errs []error
	for _, e := range old {
		if !ecs.DestroyEntity(g.world, e) {
			errs = append(errs, fmt.Errorf("destroy entity %s", e))
		}
	}
	return errors.Join(errs...)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	g.hud.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dims, ok := ecs.GetResource(g.world, render.ScreenDimensionsResource)
	if !ok {
		dims = &render.ScreenDimensions{}
		ecs.SetResource(g.world, render.ScreenDimensionsResource, dims)
	}
	dims.Width, dims.Height = outsideWidth, outsideHeight

	win, ok := ecs.GetResource(g.world, render.WindowResource)
	if !ok {
		win = &render.Window{}
		ecs.SetResource(g.world, render.WindowResource, win)
	}
	win.Width, win.Height = outsideWidth, outsideHeight

	return outsideWidth, outsideHeight
}
