package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// TPS is the fixed simulation rate; ebiten runs Update at this rate.
	TPS = 60
	// DeltaTime is one tick in seconds.
	DeltaTime = 1.0 / TPS
)

var (
	WorldForward = mgl64.Vec3{0, 0, 1}
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldRight   = mgl64.Vec3{1, 0, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// YawPitch builds a rotation from yaw around world up followed by pitch
// around the local right axis. Angles are radians.
func YawPitch(yaw, pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, WorldUp).Mul(mgl64.QuatRotate(pitch, WorldRight))
}

// Forward returns the forward direction of rotation q.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldForward)
}

// Up returns the up direction of rotation q.
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldUp)
}

// Right returns the right direction of rotation q.
func Right(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldRight)
}

// IntegrateRotation advances q by angular velocity w over dt.
func IntegrateRotation(q mgl64.Quat, w mgl64.Vec3, dt float64) mgl64.Quat {
	angle := w.Len() * dt
	if angle == 0 {
		return q
	}
	return mgl64.QuatRotate(angle, w.Normalize()).Mul(q).Normalize()
}
