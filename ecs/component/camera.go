package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective projection. Fovy is in radians.
type Camera struct {
	Fovy float64
	Near float64
	Far  float64
}

// Projection returns the projection matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(c.Fovy, aspect, c.Near, c.Far)
}

var CameraComponent = NewComponent[Camera]()
