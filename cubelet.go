package gocube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis identifies one of the three principal axes.
type Axis int

const (
	AxisX Axis = iota // Left to right
	AxisY             // Down to up
	AxisZ             // Back to front
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a names one of the three axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: unknown axis %q", ErrInvalidMove, s)
}

// Coord is a point of the integer lattice {-1,0,1}^3.
// It is the logical position used for every layer membership test.
type Coord struct {
	X, Y, Z int
}

// Get returns the coordinate on axis a.
func (c Coord) Get(a Axis) int {
	switch a {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	case AxisZ:
		return c.Z
	}
	return 0
}

// IsOrigin reports whether c is the hidden center of the cube.
func (c Coord) IsOrigin() bool {
	return c == Coord{}
}

// InRange reports whether every component is in {-1,0,1}.
func (c Coord) InRange() bool {
	return inUnit(c.X) && inUnit(c.Y) && inUnit(c.Z)
}

// Dot returns the integer dot product of c and o.
func (c Coord) Dot(o Coord) int {
	return c.X*o.X + c.Y*o.Y + c.Z*o.Z
}

// Vec3 converts c to a float vector.
func (c Coord) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// RoundCoord snaps v to the nearest lattice point.
// Halves round away from zero (math.Round); this is the only rounding rule
// used for logical positions.
func RoundCoord(v mgl64.Vec3) Coord {
	return Coord{
		X: roundInt(v[0]),
		Y: roundInt(v[1]),
		Z: roundInt(v[2]),
	}
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func inUnit(v int) bool {
	return v >= -1 && v <= 1
}

// Cubelet is one of the 26 visible sub-cubes.
//
// Position is authoritative for layer membership. Transform is the visual
// pose consumed by renderers; its translation always equals Position scaled
// by the registry spacing once a rotation has completed.
type Cubelet struct {
	ID        int        // Stable index into the registry
	Home      Coord      // Position in the solved cube, decides sticker colors
	Position  Coord      // Current logical position
	Transform mgl64.Mat4 // Visual transform
}

// Orientation returns the rotation part of the visual transform.
func (c *Cubelet) Orientation() mgl64.Mat3 {
	return c.Transform.Mat3()
}

// Translation returns the visual position of the cubelet.
func (c *Cubelet) Translation() mgl64.Vec3 {
	return c.Transform.Col(3).Vec3()
}
