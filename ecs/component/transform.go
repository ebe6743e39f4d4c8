package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform returns an identity transform at pos.
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix returns the local-to-world matrix (translate * rotate * scale).
func (t *Transform) Matrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// Forward is the direction the transform looks along (-Z in local space).
func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Normalize().Rotate(mgl64.Vec3{0, 0, -1})
}

var TransformComponent = NewComponent[Transform]()

// EulerQuat composes yaw about +Y, then pitch about +X, then roll about +Z.
func EulerQuat(yaw, pitch, roll float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).
		Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(roll, mgl64.Vec3{0, 0, 1}))
}

// Euler decomposes Rotation into the angles EulerQuat accepts.
func (t *Transform) Euler() (yaw, pitch, roll float64) {
	m := t.Rotation.Normalize().Mat4().Mat3()
	pitch = math.Asin(-clamp(m.At(1, 2), -1, 1))
	if math.Abs(m.At(1, 2)) < 0.9999999 {
		yaw = math.Atan2(m.At(0, 2), m.At(2, 2))
		roll = math.Atan2(m.At(1, 0), m.At(1, 1))
		return yaw, pitch, roll
	}
	yaw = math.Atan2(-m.At(2, 0), m.At(0, 0))
	return yaw, pitch, 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
