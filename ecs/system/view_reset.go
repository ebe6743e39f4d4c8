package system

import (
	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/input"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	ResetViewAction = "reset_view"

	resetViewDuration = 0.6
)

type resetAnim struct {
	yaw   *gween.Tween
	pitch *gween.Tween
}

// ViewResetSystem eases every FreeRotation back to its home orientation
// when the reset_view action fires.
type ViewResetSystem struct {
	reader *ecs.ReaderID
	anims  map[ecs.Entity]*resetAnim
}

func NewViewResetSystem() *ViewResetSystem {
	return &ViewResetSystem{anims: make(map[ecs.Entity]*resetAnim)}
}

func (s *ViewResetSystem) Setup(w *ecs.World) {
	s.reader = ecs.MustResource(w, input.EventsResource).RegisterReader()
}

// Active reports whether any reset tween is still running.
func (s *ViewResetSystem) Active() bool {
	return len(s.anims) > 0
}

func (s *ViewResetSystem) Update(w *ecs.World) {
	if s.reader == nil {
		panic("view reset system: update before setup")
	}

	for _, evt := range ecs.MustResource(w, input.EventsResource).Read(s.reader) {
		if evt.Kind != input.ActionPressed || evt.Action != ResetViewAction {
			continue
		}
		ecs.ForEach(w, component.FreeRotationComponent.Kind(), func(e ecs.Entity, rot *component.FreeRotation) {
			s.anims[e] = &resetAnim{
				yaw:   gween.New(float32(rot.Yaw), float32(rot.HomeYaw), resetViewDuration, ease.OutCubic),
				pitch: gween.New(float32(rot.Pitch), float32(rot.HomePitch), resetViewDuration, ease.OutCubic),
			}
		})
	}

	if len(s.anims) == 0 {
		return
	}

	dt := float32(0)
	if t, ok := ecs.GetResource(w, TimeResource); ok {
		dt = float32(t.Delta)
	}

	for e, anim := range s.anims {
		rot, ok := ecs.Get(w, e, component.FreeRotationComponent.Kind())
		if !ok {
			delete(s.anims, e)
			continue
		}
		yaw, doneYaw := anim.yaw.Update(dt)
		pitch, donePitch := anim.pitch.Update(dt)
		rot.Yaw, rot.Pitch = float64(yaw), float64(pitch)
		if doneYaw && donePitch {
			rot.Yaw, rot.Pitch = rot.HomeYaw, rot.HomePitch
			delete(s.anims, e)
		}
	}
}
