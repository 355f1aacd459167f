package gocube

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	NumCubelets     = 26 // Cubelets in a 3x3x3 cube, center excluded
	LayerSize       = 9  // Cubelets in an outer layer
	MiddleLayerSize = 8  // Cubelets in a middle layer, around the missing center

	CubeletSize = 1.0  // Edge length of a cubelet
	DefaultGap  = 0.05 // Visual gap between neighbouring cubelets
)

// DefaultSpacing is the distance between neighbouring cubelet centers.
const DefaultSpacing = CubeletSize + DefaultGap

// Registry holds the 26 cubelets of the cube.
// Membership is fixed at construction; only positions and transforms change.
type Registry struct {
	cubelets []*Cubelet
	spacing  float64
}

// NewRegistry builds a solved cube whose cubelet centers are spacing apart.
// A non-positive spacing selects DefaultSpacing.
func NewRegistry(spacing float64) *Registry {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}

	r := &Registry{
		cubelets: make([]*Cubelet, 0, NumCubelets),
		spacing:  spacing,
	}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				home := Coord{x, y, z}
				if home.IsOrigin() {
					continue
				}
				c := &Cubelet{ID: len(r.cubelets), Home: home}
				r.place(c)
				r.cubelets = append(r.cubelets, c)
			}
		}
	}
	return r
}

// place puts c back at its home cell with no rotation.
// The logical position is the visual position normalized back to unit steps.
func (r *Registry) place(c *Cubelet) {
	visual := c.Home.Vec3().Mul(r.spacing)
	c.Transform = mgl64.Translate3D(visual[0], visual[1], visual[2])
	c.Position = RoundCoord(visual.Mul(1 / r.spacing))
}

// Reset returns every cubelet to its solved position and orientation.
func (r *Registry) Reset() {
	for _, c := range r.cubelets {
		r.place(c)
	}
}

// Spacing returns the distance between neighbouring cubelet centers.
func (r *Registry) Spacing() float64 {
	return r.spacing
}

// Len returns the number of cubelets. It is always NumCubelets.
func (r *Registry) Len() int {
	return len(r.cubelets)
}

// Cubelets returns the cubelets in id order.
// The returned slice is a copy; the cubelets themselves are shared.
func (r *Registry) Cubelets() []*Cubelet {
	out := make([]*Cubelet, len(r.cubelets))
	copy(out, r.cubelets)
	return out
}

// Cubelet returns the cubelet with the given id, or nil.
func (r *Registry) Cubelet(id int) *Cubelet {
	if id < 0 || id >= len(r.cubelets) {
		return nil
	}
	return r.cubelets[id]
}

// At returns the cubelet currently at logical position p, or nil.
func (r *Registry) At(p Coord) *Cubelet {
	for _, c := range r.cubelets {
		if c.Position == p {
			return c
		}
	}
	return nil
}

// Positions returns the logical position of every cubelet in id order.
func (r *Registry) Positions() []Coord {
	out := make([]Coord, len(r.cubelets))
	for i, c := range r.cubelets {
		out[i] = c.Position
	}
	return out
}

// Validate checks that the registry holds 26 cubelets on distinct
// non-center lattice points.
func (r *Registry) Validate() error {
	if len(r.cubelets) != NumCubelets {
		return fmt.Errorf("%w: %d cubelets", ErrPositionCollision, len(r.cubelets))
	}

	seen := make(map[Coord]int, NumCubelets)
	for _, c := range r.cubelets {
		if !c.Position.InRange() || c.Position.IsOrigin() {
			return fmt.Errorf("%w: cubelet %d at %s", ErrPositionCollision, c.ID, c.Position)
		}
		if other, ok := seen[c.Position]; ok {
			return fmt.Errorf("%w: cubelets %d and %d at %s", ErrPositionCollision, other, c.ID, c.Position)
		}
		seen[c.Position] = c.ID
	}
	return nil
}
