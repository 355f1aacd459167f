package gocube

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is the active rotation context: the move being animated, the
// cubelets it carries and how far along it is.
type Rotation struct {
	Move     Move
	Selected []int     // Cubelet ids in the turning layer
	Start    time.Time // Host time of the first frame
	Progress float64   // 0..1, never decreases
}

// Angle returns the current right-handed pivot angle in radians.
func (r Rotation) Angle() float64 {
	return turnAngle(r.Move, r.Progress)
}

// Animator drives at most one layer rotation at a time.
//
// Instead of reparenting cubelets into a pivot group, the animator keeps the
// selected ids and a progress value, and composes the pivot rotation onto
// the stored transforms when a pose is read. Stored transforms only change
// once, when the rotation completes.
type Animator struct {
	registry *Registry
	duration time.Duration

	active  *Rotation
	inLayer []bool
}

// NewAnimator creates an idle animator for the registry.
// Each rotation lasts duration; zero or less completes on the first frame.
func NewAnimator(r *Registry, duration time.Duration) *Animator {
	return &Animator{
		registry: r,
		duration: duration,
		inLayer:  make([]bool, r.Len()),
	}
}

// Duration returns the length of one rotation.
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// Running reports whether a rotation is in progress.
func (a *Animator) Running() bool {
	return a.active != nil
}

// Active returns a copy of the rotation in progress.
func (a *Animator) Active() (Rotation, bool) {
	if a.active == nil {
		return Rotation{}, false
	}
	rot := *a.active
	rot.Selected = append([]int(nil), a.active.Selected...)
	return rot, true
}

// Begin starts animating m at time now.
//
// If a rotation is already running the call does nothing and returns false.
// If the layer selection fails (invalid move or drifted positions) nothing
// changes and the error is returned.
func (a *Animator) Begin(m Move, now time.Time) (bool, error) {
	if a.active != nil {
		return false, nil
	}

	ids, err := a.registry.Select(m.Axis, m.Layer)
	if err != nil {
		return false, err
	}

	for _, id := range ids {
		a.inLayer[id] = true
	}
	a.active = &Rotation{
		Move:     m,
		Selected: ids,
		Start:    now,
	}
	return true, nil
}

// Advance moves the rotation to time now and reports whether it completed
// on this call. Progress is time based: t = clamp((now-start)/duration, 0, 1).
func (a *Animator) Advance(now time.Time) bool {
	if a.active == nil {
		return false
	}

	t := progress(now.Sub(a.active.Start), a.duration)
	if t < a.active.Progress {
		t = a.active.Progress
	}
	a.active.Progress = t

	if t < 1 {
		return false
	}

	a.finish()
	return true
}

// finish applies the exact quarter turn to the carried cubelets and
// returns them to the cube.
func (a *Animator) finish() {
	rot := a.active
	spacing := a.registry.Spacing()
	for _, id := range rot.Selected {
		applyQuarterTurn(a.registry.Cubelet(id), rot.Move, spacing)
		a.inLayer[id] = false
	}
	a.active = nil
}

// Progress returns the progress of the active rotation, 0 when idle.
func (a *Animator) Progress() float64 {
	if a.active == nil {
		return 0
	}
	return a.active.Progress
}

// Angle returns the current pivot angle in radians, 0 when idle.
func (a *Animator) Angle() float64 {
	if a.active == nil {
		return 0
	}
	return a.active.Angle()
}

// Carrying reports whether cubelet id is part of the turning layer.
func (a *Animator) Carrying(id int) bool {
	return id >= 0 && id < len(a.inLayer) && a.inLayer[id]
}

// Pose returns the transform a renderer should draw cubelet id with.
// Cubelets in the turning layer are rotated by the current pivot angle.
func (a *Animator) Pose(id int) mgl64.Mat4 {
	c := a.registry.Cubelet(id)
	if c == nil {
		return mgl64.Ident4()
	}
	if !a.Carrying(id) {
		return c.Transform
	}
	pivot := axisRotation(a.active.Move.Axis, a.active.Angle())
	return pivot.Mul4(c.Transform)
}

// progress maps elapsed time onto [0, 1].
func progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	t := float64(elapsed) / float64(duration)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
