// Package gocube provides the state and rotation engine behind an animated
// 3x3x3 twisty puzzle.
//
// # Features
//
//   - A registry of the 26 movable cubelets with integer logical positions
//   - Layer selection by axis and coordinate
//   - Time-based rotation animation of one layer at a time
//   - A FIFO move queue that never drops or merges moves
//   - Keyboard mapping for the six face moves
//
// # Quick Start
//
// The host owns the frame loop. It enqueues moves from input events and
// advances the engine once per frame:
//
//	engine := gocube.New(gocube.WithDuration(300 * time.Millisecond))
//
//	if move, ok := gocube.NotationKeys.Lookup("u", false); ok {
//	    engine.Enqueue(move)
//	}
//
//	for engine.Running() {
//	    engine.Advance(time.Now())
//	    draw(engine) // reads engine.Pose(id) for every cubelet
//	}
//
// # Moves
//
// A Move turns every cubelet whose logical position on Axis equals Layer by
// 90 degrees. Clockwise is judged looking at the layer from the positive end
// of the axis toward the origin:
//
//	gocube.U      // {y, 1, clockwise}
//	gocube.UPrime // {y, 1, counter-clockwise}
//	// ... and similarly for D, L, R, F, B
//
// # Concurrency
//
// The engine is not safe for concurrent use. All calls are expected from the
// host's single event loop; the rotation state itself is the only
// mutual-exclusion mechanism.
package gocube
