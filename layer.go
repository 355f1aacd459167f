package gocube

import "fmt"

// Select returns the ids of the cubelets whose logical coordinate on axis
// equals value.
//
// An outer layer always holds exactly LayerSize cubelets and a middle layer
// MiddleLayerSize, since the center cell is empty. Any other count means
// positions have drifted and ErrLayerDrift is returned together with the
// (wrong) selection; callers must not rotate it.
func (r *Registry) Select(axis Axis, value int) ([]int, error) {
	if !axis.Valid() || !inUnit(value) {
		return nil, fmt.Errorf("%w: layer %s=%d", ErrInvalidMove, axis, value)
	}

	ids := make([]int, 0, LayerSize)
	for _, c := range r.cubelets {
		if c.Position.Get(axis) == value {
			ids = append(ids, c.ID)
		}
	}

	if len(ids) != layerSize(value) {
		return ids, fmt.Errorf("%w: layer %s=%d holds %d cubelets", ErrLayerDrift, axis, value, len(ids))
	}
	return ids, nil
}

// CheckLayers verifies that the nine layers partition the cube: every
// selection holds its expected number of cubelets and every cubelet belongs
// to exactly one layer per axis.
func (r *Registry) CheckLayers() error {
	if err := r.Validate(); err != nil {
		return err
	}

	membership := make([]int, len(r.cubelets))
	for axis := AxisX; axis <= AxisZ; axis++ {
		for value := -1; value <= 1; value++ {
			ids, err := r.Select(axis, value)
			if err != nil {
				return err
			}
			for _, id := range ids {
				membership[id]++
			}
		}
	}

	for id, n := range membership {
		if n != 3 {
			return fmt.Errorf("%w: cubelet %d is in %d layers", ErrLayerDrift, id, n)
		}
	}
	return nil
}

// layerSize returns how many cubelets the layer at value must hold.
func layerSize(value int) int {
	if value == 0 {
		return MiddleLayerSize
	}
	return LayerSize
}
