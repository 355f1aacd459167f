package gocube

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Engine owns the cubelet registry, the rotation state and the move queue.
//
// Hosts call Enqueue from input events and Advance once per frame. Moves are
// applied one at a time in the order they were enqueued; a move enqueued
// while another is animating waits for it to finish.
//
// Create an Engine with New:
//
//	engine := gocube.New(gocube.WithLogger(logger))
//	engine.OnMoveApplied(func(m gocube.Move) {
//	    fmt.Println("Applied:", m.Notation())
//	})
type Engine struct {
	id       string
	registry *Registry
	animator *Animator
	queue    moveQueue
	cfg      *config
	log      *slog.Logger

	applied    int
	inCallback bool

	// Callbacks
	onMoveApplied func(Move)
	onViolation   func(Move, error)
}

// New creates an engine holding a solved cube.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	id := uuid.NewString()
	registry := NewRegistry(cfg.spacing)
	e := &Engine{
		id:       id,
		registry: registry,
		animator: NewAnimator(registry, cfg.duration),
		cfg:      cfg,
		log:      cfg.logger.With("engine", id),
	}

	e.log.Info("engine.created",
		"duration", cfg.duration.String(),
		"spacing", cfg.spacing,
		"strict", cfg.strict,
	)
	return e
}

// ID returns the session id used to tag log records.
func (e *Engine) ID() string {
	return e.id
}

// Registry returns the cubelet registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Animator returns the rotation animator.
func (e *Engine) Animator() *Animator {
	return e.animator
}

// OnMoveApplied sets a callback that fires after a move has fully completed.
// The callback may call Enqueue; the move is picked up after it returns.
func (e *Engine) OnMoveApplied(cb func(Move)) {
	e.onMoveApplied = cb
}

// OnInvariantViolation sets a callback that fires when a move is skipped
// because its layer selection failed.
func (e *Engine) OnInvariantViolation(cb func(Move, error)) {
	e.onViolation = cb
}

// Enqueue appends a move to the queue. It never blocks and never drops a
// valid move. If no rotation is running the move starts immediately at the
// engine clock's current time.
func (e *Engine) Enqueue(m Move) error {
	if !m.Valid() {
		return fmt.Errorf("%w: axis %s layer %d", ErrInvalidMove, m.Axis, m.Layer)
	}

	e.queue.push(m)
	e.log.Debug("move.enqueued", "move", m.String(), "pending", e.queue.len())

	if e.inCallback || e.animator.Running() {
		return nil
	}
	e.dispatch(e.cfg.clock.Now())
	return nil
}

// BeginRotation starts m directly, bypassing the queue.
// It is a no-op returning false while another rotation is running, while
// moves are queued, or from inside a callback. Queued moves keep their order.
func (e *Engine) BeginRotation(m Move) bool {
	if e.inCallback || e.animator.Running() || e.queue.len() > 0 {
		e.log.Debug("rotation.redundant_start", "move", m.String(), "pending", e.queue.len())
		return false
	}
	return e.start(m, e.cfg.clock.Now())
}

// Advance is called by the host once per frame with the current time.
// It animates the running rotation, and when that completes it applies the
// move and starts the next queued one within the same frame.
func (e *Engine) Advance(now time.Time) error {
	if e.inCallback {
		return fmt.Errorf("%w: Advance from a callback", ErrReentrant)
	}

	if rot, ok := e.animator.Active(); ok && e.animator.Advance(now) {
		e.applied++
		e.log.Debug("rotation.completed",
			"move", rot.Move.String(),
			"elapsed", now.Sub(rot.Start).String(),
			"applied", e.applied,
		)
		e.notify(rot.Move)
	}

	e.dispatch(now)
	return nil
}

// Drain advances frame by frame at the configured frame rate, starting at
// from, until the queue is empty and no rotation runs. It returns the time
// of the last frame and the number of frames taken. A ManualClock used by
// the engine is kept in step.
func (e *Engine) Drain(from time.Time) (time.Time, int) {
	step := e.FrameInterval()
	manual, _ := e.cfg.clock.(*ManualClock)

	now, frames := from, 0
	for !e.Idle() {
		now = now.Add(step)
		frames++
		if manual != nil {
			manual.Set(now)
		}
		if err := e.Advance(now); err != nil {
			break
		}
	}
	return now, frames
}

// dispatch starts queued moves until one is running or the queue is empty.
// Moves whose layer cannot be selected are skipped.
func (e *Engine) dispatch(now time.Time) {
	for !e.animator.Running() {
		m, ok := e.queue.pop()
		if !ok {
			return
		}
		e.start(m, now)
	}
}

func (e *Engine) start(m Move, now time.Time) bool {
	started, err := e.animator.Begin(m, now)
	if err != nil {
		e.violation(m, err)
		return false
	}
	if started {
		e.log.Debug("rotation.started", "move", m.String(), "pending", e.queue.len())
	}
	return started
}

func (e *Engine) notify(m Move) {
	if e.onMoveApplied == nil {
		return
	}
	e.inCallback = true
	defer func() { e.inCallback = false }()
	e.onMoveApplied(m)
}

func (e *Engine) violation(m Move, err error) {
	e.log.Error("move.skipped", "move", m.String(), "error", err)
	if e.cfg.strict {
		panic(err)
	}
	if e.onViolation == nil {
		return
	}
	e.inCallback = true
	defer func() { e.inCallback = false }()
	e.onViolation(m, err)
}

// Reset returns the cube to the solved state and clears the queue.
// It fails while a rotation is running, since rotations are never cancelled.
func (e *Engine) Reset() error {
	if e.animator.Running() {
		return ErrRotationActive
	}
	e.queue.clear()
	e.registry.Reset()
	e.applied = 0
	e.log.Info("engine.reset")
	return nil
}

// Running reports whether a rotation is animating.
func (e *Engine) Running() bool {
	return e.animator.Running()
}

// Idle reports whether nothing runs and nothing is queued.
func (e *Engine) Idle() bool {
	return !e.animator.Running() && e.queue.len() == 0
}

// Active returns the rotation in progress.
func (e *Engine) Active() (Rotation, bool) {
	return e.animator.Active()
}

// Pending returns a copy of the queued moves, oldest first.
// The running move is not included.
func (e *Engine) Pending() []Move {
	return e.queue.snapshot()
}

// QueueLen returns the number of queued moves.
func (e *Engine) QueueLen() int {
	return e.queue.len()
}

// Applied returns how many moves have completed since creation or Reset.
func (e *Engine) Applied() int {
	return e.applied
}

// Pose returns the transform to draw cubelet id with in the current frame.
func (e *Engine) Pose(id int) mgl64.Mat4 {
	return e.animator.Pose(id)
}

// Facelets returns the sticker layout of the last completed state.
func (e *Engine) Facelets() Facelets {
	return e.registry.Facelets()
}

// IsSolved reports whether every face shows a single color.
func (e *Engine) IsSolved() bool {
	return e.registry.Facelets().IsSolved()
}

// Duration returns the length of one quarter turn.
func (e *Engine) Duration() time.Duration {
	return e.cfg.duration
}

// FrameInterval returns the frame period derived from the frame rate.
// It is never zero, so Drain always moves time forward.
func (e *Engine) FrameInterval() time.Duration {
	return max(time.Second/time.Duration(e.cfg.frameRate), time.Nanosecond)
}
