package system

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/milk9111/arcball/ecs"
	"github.com/milk9111/arcball/ecs/component"
	"github.com/milk9111/arcball/input"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

const CopyPoseAction = "copy_pose"

type ClipboardWriter interface {
	WriteText(text []byte) error
}

// SystemClipboard writes to the OS clipboard. Init runs on first use.
type SystemClipboard struct {
	once sync.Once
	err  error
}

func (c *SystemClipboard) WriteText(text []byte) error {
	c.once.Do(func() {
		c.err = clipboard.Init()
	})
	if c.err != nil {
		return fmt.Errorf("clipboard: init: %w", c.err)
	}
	clipboard.Write(clipboard.FmtText, text)
	return nil
}

// Pose is the orbit camera state in the shape the scene prefab accepts.
type Pose struct {
	Distance     float64    `yaml:"distance"`
	Target       string     `yaml:"target,omitempty"`
	YawDegrees   float64    `yaml:"yaw_degrees"`
	PitchDegrees float64    `yaml:"pitch_degrees"`
	Position     [3]float64 `yaml:"position"`
}

// PoseClipboardSystem copies the first orbit camera's pose to the clipboard
// when copy_pose fires.
type PoseClipboardSystem struct {
	reader    *ecs.ReaderID
	clipboard ClipboardWriter
}

func NewPoseClipboardSystem(cb ClipboardWriter) *PoseClipboardSystem {
	if cb == nil {
		cb = &SystemClipboard{}
	}
	return &PoseClipboardSystem{clipboard: cb}
}

func (s *PoseClipboardSystem) Setup(w *ecs.World) {
	s.reader = ecs.MustResource(w, input.EventsResource).RegisterReader()
}

func (s *PoseClipboardSystem) Update(w *ecs.World) {
	if s.reader == nil {
		panic("pose clipboard system: update before setup")
	}

	copyRequested := false
	for _, evt := range ecs.MustResource(w, input.EventsResource).Read(s.reader) {
		if evt.Kind == input.ActionPressed && evt.Action == CopyPoseAction {
			copyRequested = true
		}
	}
	if !copyRequested {
		return
	}

	pose, ok := CameraPose(w)
	if !ok {
		return
	}
	data, err := yaml.Marshal(pose)
	if err != nil {
		log.Printf("pose clipboard: marshal pose: %v", err)
		return
	}
	if err := s.clipboard.WriteText(data); err != nil {
		log.Printf("pose clipboard: %v", err)
	}
}

// CameraPose reads the pose of the first orbit camera in w.
func CameraPose(w *ecs.World) (Pose, bool) {
	e, ok := ecs.First(w, component.OrbitCameraTagComponent.Kind())
	if !ok {
		return Pose{}, false
	}
	tag, _ := ecs.Get(w, e, component.OrbitCameraTagComponent.Kind())
	pose := Pose{Distance: tag.Distance, Target: tag.TargetName}

	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pose.Position = [3]float64{tr.Position.X(), tr.Position.Y(), tr.Position.Z()}
		yaw, pitch, _ := tr.Euler()
		pose.YawDegrees, pose.PitchDegrees = degrees(yaw), degrees(pitch)
	}
	if rot, ok := ecs.Get(w, e, component.FreeRotationComponent.Kind()); ok {
		pose.YawDegrees, pose.PitchDegrees = degrees(rot.Yaw), degrees(rot.Pitch)
	}
	return pose, true
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
