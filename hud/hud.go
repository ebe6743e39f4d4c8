// Package hud draws the ebitenui overlay with the orbit camera's state.
package hud

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/system"
	"github.com/milk9111/arcball/input"
	"golang.org/x/image/font/gofont/goregular"
)

const ToggleAction = "toggle_hud"

var textColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// HUD shows camera stats and a pair of buttons that publish the same
// actions as their key bindings.
type HUD struct {
	ui      *ebitenui.UI
	visible bool
	reader  *ecs.ReaderID
	events  *ecs.EventChannel[input.Event]

	lines []*widget.Text
}

func New(visible bool) (*HUD, error) {
	src, err := ebtext.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	var face ebtext.Face = &ebtext.GoTextFace{Source: src, Size: 14}

	h := &HUD{visible: visible}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 160})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)

	for i := 0; i < len(FormatStats(system.Pose{}, 0)); i++ {
		line := widget.NewText(widget.TextOpts.Text("", &face, textColor))
		h.lines = append(h.lines, line)
		panel.AddChild(line)
	}

	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	for _, b := range []struct{ label, action string }{
		{"Reset view", system.ResetViewAction},
		{"Copy pose", system.CopyPoseAction},
	} {
		action := b.action
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if h.events != nil {
					h.events.Write(input.Action(action, true))
					h.events.Write(input.Action(action, false))
				}
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	h.ui = &ebitenui.UI{Container: root}
	return h, nil
}

func (h *HUD) Visible() bool {
	return h.visible
}

func (h *HUD) Setup(w *ecs.World) {
	h.events = ecs.MustResource(w, input.EventsResource)
	h.reader = h.events.RegisterReader()
}

func (h *HUD) Update(w *ecs.World) {
	if h.reader == nil {
		panic("hud: update before setup")
	}

	for _, evt := range h.events.Read(h.reader) {
		if evt.Kind == input.ActionPressed && evt.Action == ToggleAction {
			h.visible = !h.visible
		}
	}
	if !h.visible {
		return
	}

	pose, _ := system.CameraPose(w)
	for i, line := range FormatStats(pose, ebiten.ActualTPS()) {
		h.lines[i].Label = line
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible {
		return
	}
	h.ui.Draw(screen)
}

// FormatStats renders the HUD text lines for a camera pose.
func FormatStats(pose system.Pose, tps float64) []string {
	return []string{
		fmt.Sprintf("distance %.2f", pose.Distance),
		fmt.Sprintf("yaw %.1f°  pitch %.1f°", pose.YawDegrees, pose.PitchDegrees),
		fmt.Sprintf("eye (%.2f, %.2f, %.2f)", pose.Position[0], pose.Position[1], pose.Position[2]),
		fmt.Sprintf("tps %.0f", tps),
	}
}
