package system

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/input"
	"gopkg.in/yaml.v3"
)

type fakeClipboard struct {
	writes [][]byte
}

func (c *fakeClipboard) WriteText(text []byte) error {
	c.writes = append(c.writes, append([]byte(nil), text...))
	return nil
}

func TestPoseClipboardSystem(t *testing.T) {
	w, ch := newInputWorld()
	cam := spawnOrbitCamera(t, w, 12)
	tag, _ := ecs.Get(w, cam, component.OrbitCameraTagComponent.Kind())
	tag.TargetName = "target"
	_ = ecs.Add(w, cam, component.FreeRotationComponent.Kind(), &component.FreeRotation{Yaw: math.Pi / 6, Pitch: -math.Pi / 9})

	cb := &fakeClipboard{}
	sys := NewPoseClipboardSystem(cb)
	sys.Setup(w)

	ch.Write(input.Action(RotateAction, true))
	sys.Update(w)
	if len(cb.writes) != 0 {
		t.Fatalf("expected no clipboard write for other actions")
	}

	ch.Write(input.Action(CopyPoseAction, true))
	ch.Write(input.Action(CopyPoseAction, false))
	sys.Update(w)
	if len(cb.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(cb.writes))
	}

	var pose Pose
	if err := yaml.Unmarshal(cb.writes[0], &pose); err != nil {
		t.Fatalf("unmarshal pose: %v", err)
	}
	if pose.Distance != 12 || pose.Target != "target" {
		t.Fatalf("pose = %+v", pose)
	}
	if !approx(pose.YawDegrees, 30) || !approx(pose.PitchDegrees, -20) {
		t.Fatalf("yaw, pitch = %v, %v, want 30, -20", pose.YawDegrees, pose.PitchDegrees)
	}
	if !strings.Contains(string(cb.writes[0]), "yaw_degrees:") {
		t.Fatalf("expected prefab field names in %q", cb.writes[0])
	}
}

func TestCameraPoseWithoutCamera(t *testing.T) {
	if _, ok := CameraPose(ecs.NewWorld()); ok {
		t.Fatalf("expected no pose in empty world")
	}
}
