package vector

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const smallAngle = 1e-6

// RotationVector returns the axis-angle vector of q: the rotation axis scaled
// by the angle in radians, taking the shortest arc. Rotation vectors can be
// smoothed component-wise and turned back into quaternions with [Quat].
func RotationVector(q mgl32.Quat) mgl32.Vec3 {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	s := q.V.Len()
	if s < smallAngle {
		return q.V.Mul(2)
	}
	angle := 2 * float32(math.Atan2(float64(s), float64(q.W)))
	return q.V.Mul(angle / s)
}

// Quat is the inverse of [RotationVector].
func Quat(v mgl32.Vec3) mgl32.Quat {
	angle := v.Len()
	if angle < smallAngle {
		return mgl32.Quat{W: 1, V: v.Mul(0.5)}.Normalize()
	}
	return mgl32.QuatRotate(angle, v.Mul(1/angle))
}
