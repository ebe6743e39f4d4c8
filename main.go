package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arcball/config"
	"github.com/milk9111/arcball/prefabs"
)

func main() {
	width := flag.Int("width", 0, "window width (overrides display.yaml)")
	height := flag.Int("height", 0, "window height (overrides display.yaml)")
	scene := flag.String("scene", prefabs.SceneFile, "scene prefab in prefabs/")
	showHUD := flag.Bool("hud", true, "show the camera HUD at start")
	flag.Parse()

	data, err := prefabs.Load(prefabs.DisplayFile)
	if err != nil {
		log.Fatalf("load %s: %v", prefabs.DisplayFile, err)
	}
	overrides := config.Overrides{Width: *width, Height: *height}
	display, err := config.LoadDisplayWith(data, overrides)
	if err != nil {
		log.Fatal(err)
	}

	applyDisplay(display)

	game, err := NewGame(display, overrides, *scene, *showHUD)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func applyDisplay(d config.Display) {
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetWindowSize(d.Width, d.Height)
	if d.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetFullscreen(d.Fullscreen)
	ebiten.SetVsyncEnabled(d.VSync)
	ebiten.SetTPS(d.TPS)
}
