package gocube

import "fmt"

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// CubeFace represents a face of the cube for the sticker layout.
type CubeFace int

const (
	CubeFaceU CubeFace = 0 // Up (White)
	CubeFaceD CubeFace = 1 // Down (Yellow)
	CubeFaceF CubeFace = 2 // Front (Green)
	CubeFaceB CubeFace = 3 // Back (Blue)
	CubeFaceR CubeFace = 4 // Right (Red)
	CubeFaceL CubeFace = 5 // Left (Orange)
)

func (f CubeFace) String() string {
	switch f {
	case CubeFaceU:
		return "U"
	case CubeFaceD:
		return "D"
	case CubeFaceF:
		return "F"
	case CubeFaceB:
		return "B"
	case CubeFaceR:
		return "R"
	case CubeFaceL:
		return "L"
	default:
		return "?"
	}
}

// faceFrame places a face in space: its outward normal, and the directions
// of increasing column and row when the face is looked at in the net.
type faceFrame struct {
	normal, right, down Coord
}

var faceFrames = [6]faceFrame{
	CubeFaceU: {normal: Coord{0, 1, 0}, right: Coord{1, 0, 0}, down: Coord{0, 0, 1}},
	CubeFaceD: {normal: Coord{0, -1, 0}, right: Coord{1, 0, 0}, down: Coord{0, 0, -1}},
	CubeFaceF: {normal: Coord{0, 0, 1}, right: Coord{1, 0, 0}, down: Coord{0, -1, 0}},
	CubeFaceB: {normal: Coord{0, 0, -1}, right: Coord{-1, 0, 0}, down: Coord{0, -1, 0}},
	CubeFaceR: {normal: Coord{1, 0, 0}, right: Coord{0, 0, -1}, down: Coord{0, -1, 0}},
	CubeFaceL: {normal: Coord{-1, 0, 0}, right: Coord{0, 0, 1}, down: Coord{0, -1, 0}},
}

// faceToSolvedColor returns the color of a face when solved.
func faceToSolvedColor(f CubeFace) Color {
	switch f {
	case CubeFaceU:
		return White
	case CubeFaceD:
		return Yellow
	case CubeFaceF:
		return Green
	case CubeFaceB:
		return Blue
	case CubeFaceR:
		return Red
	case CubeFaceL:
		return Orange
	default:
		return White
	}
}

// faceWithNormal returns the face whose outward normal is n.
func faceWithNormal(n Coord) (CubeFace, bool) {
	for f, frame := range faceFrames {
		if frame.normal == n {
			return CubeFace(f), true
		}
	}
	return 0, false
}

// Facelets is a sticker snapshot of the cube.
// Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// as seen in the unfolded net printed by String.
type Facelets struct {
	// Colors[face][position] = color
	Colors [6][9]Color
	// Cubelets[face][position] = id of the cubelet carrying the sticker
	Cubelets [6][9]int
}

// Facelets derives the sticker layout from the cubelets' logical positions
// and orientations. A sticker starts on the home face of its cubelet and
// points wherever the cubelet's rotation has since turned that normal.
func (r *Registry) Facelets() Facelets {
	var f Facelets
	for _, c := range r.cubelets {
		rot := c.Orientation()
		for home, frame := range faceFrames {
			if c.Home.Dot(frame.normal) != 1 {
				continue
			}
			face, ok := faceWithNormal(RoundCoord(rot.Mul3x1(frame.normal.Vec3())))
			if !ok {
				continue
			}
			target := faceFrames[face]
			idx := (c.Position.Dot(target.down)+1)*3 + c.Position.Dot(target.right) + 1
			f.Colors[face][idx] = faceToSolvedColor(CubeFace(home))
			f.Cubelets[face][idx] = c.ID
		}
	}
	return f
}

// IsSolved returns true if every face shows a single color.
func (f Facelets) IsSolved() bool {
	for face := CubeFace(0); face < 6; face++ {
		center := f.Colors[face][4]
		for i := 0; i < 9; i++ {
			if f.Colors[face][i] != center {
				return false
			}
		}
	}
	return true
}

// String returns a text representation of the cube.
func (f Facelets) String() string {
	result := ""

	// U face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += f.Colors[CubeFaceU][row*3+col].String() + " "
		}
		result += "\n"
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []CubeFace{CubeFaceL, CubeFaceF, CubeFaceR, CubeFaceB} {
			for col := 0; col < 3; col++ {
				result += f.Colors[face][row*3+col].String() + " "
			}
		}
		result += "\n"
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += f.Colors[CubeFaceD][row*3+col].String() + " "
		}
		result += "\n"
	}

	return result
}

// Debug returns a simple debug string.
func (f Facelets) Debug() string {
	return fmt.Sprintf("Solved: %v", f.IsSolved())
}
