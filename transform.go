package gocube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// quarter is a quarter turn in radians.
const quarter = math.Pi / 2

// turnAngle returns the right-handed angle about the move axis after a
// fraction t of the move. Clockwise seen from the positive end of the axis
// is a negative right-handed angle.
func turnAngle(m Move, t float64) float64 {
	if m.Clockwise {
		return -quarter * t
	}
	return quarter * t
}

// axisRotation returns a rotation of angle radians about a principal axis.
func axisRotation(a Axis, angle float64) mgl64.Mat4 {
	switch a {
	case AxisX:
		return mgl64.HomogRotate3DX(angle)
	case AxisY:
		return mgl64.HomogRotate3DY(angle)
	case AxisZ:
		return mgl64.HomogRotate3DZ(angle)
	}
	return mgl64.Ident4()
}

// quarterTurn returns the exact matrix of a completed move: every entry of
// the rotation block is -1, 0 or 1.
func quarterTurn(m Move) mgl64.Mat4 {
	return snapRotation(axisRotation(m.Axis, turnAngle(m, 1)))
}

// snapRotation rounds the rotation block of t to integers.
// Only meaningful for compositions of quarter turns.
func snapRotation(t mgl64.Mat4) mgl64.Mat4 {
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			i := col*4 + row
			t[i] = math.Round(t[i]) + 0 // no negative zero
		}
	}
	return t
}

// settle rebuilds a transform from its snapped rotation and the logical
// position, dropping any floating error picked up while composing.
func settle(t mgl64.Mat4, pos Coord, spacing float64) mgl64.Mat4 {
	t = snapRotation(t)
	t[3], t[7], t[11] = 0, 0, 0
	t[12] = float64(pos.X) * spacing
	t[13] = float64(pos.Y) * spacing
	t[14] = float64(pos.Z) * spacing
	t[15] = 1
	return t
}

// applyQuarterTurn moves c by the completed move m.
// The logical position is re-rounded after the rotation.
func applyQuarterTurn(c *Cubelet, m Move, spacing float64) {
	q := quarterTurn(m)
	c.Position = RoundCoord(q.Mat3().Mul3x1(c.Position.Vec3()))
	c.Transform = settle(q.Mul4(c.Transform), c.Position, spacing)
}
