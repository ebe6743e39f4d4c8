package component

// FreeRotation holds the mouse-driven orientation of an orbit camera.
// Yaw and Pitch are radians; the Home values are restored on view reset.
type FreeRotation struct {
	Yaw          float64
	Pitch        float64
	HomeYaw      float64
	HomePitch    float64
	SensitivityX float64
	SensitivityY float64
}

var FreeRotationComponent = NewComponent[FreeRotation]()
