package ingest

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/virtual-embodiment-lab/obe-new/models"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// FromEuler builds a rotation from angles in degrees about X, Y and Z,
// applied Z first, then X, then Y.
func FromEuler(x, y, z float32) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(x), axisX)
	qy := mgl32.QuatRotate(mgl32.DegToRad(y), axisY)
	qz := mgl32.QuatRotate(mgl32.DegToRad(z), axisZ)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// EulerAngles is the inverse of FromEuler. Angles are returned in degrees
// in [0, 360), the form engines report, with no unwrapping between calls.
func EulerAngles(q mgl32.Quat) models.Vec3 {
	m := q.Normalize().Mat4()

	sx := clamp(-float64(m.At(1, 2)), -1, 1)
	x := math.Asin(sx)

	var y, z float64
	if math.Abs(sx) < 0.9999 {
		y = math.Atan2(float64(m.At(0, 2)), float64(m.At(2, 2)))
		z = math.Atan2(float64(m.At(1, 0)), float64(m.At(1, 1)))
	} else {
		// Gimbal lock: roll folds into yaw.
		y = math.Atan2(-float64(m.At(2, 0)), float64(m.At(0, 0)))
		z = 0
	}

	return models.Vec3{X: wrapDegrees(x), Y: wrapDegrees(y), Z: wrapDegrees(z)}
}

func wrapDegrees(rad float64) float32 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	f := float32(d)
	if f >= 360 {
		f = 0
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
