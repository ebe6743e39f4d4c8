package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// DirectionalLight shines along Direction. Ambient is the unlit floor
// intensity in [0, 1].
type DirectionalLight struct {
	Direction mgl64.Vec3
	Color     color.NRGBA
	Intensity float64
	Ambient   float64
}

var DirectionalLightComponent = NewComponent[DirectionalLight]()
