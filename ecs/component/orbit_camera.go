package component

// OrbitCameraTag places a camera Distance units away from the entity named
// TargetName. Distance is scaled by scroll input and is not clamped.
type OrbitCameraTag struct {
	Distance   float64
	TargetName string
}

var OrbitCameraTagComponent = NewComponent[OrbitCameraTag]()
