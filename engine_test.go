package gocube

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func newTestEngine(opts ...Option) (*Engine, *ManualClock) {
	clock := NewManualClock(t0)
	opts = append([]Option{WithClock(clock), WithDuration(DefaultDuration)}, opts...)
	return New(opts...), clock
}

func TestEnqueueWhileIdleStartsImmediately(t *testing.T) {
	e, _ := newTestEngine()
	if err := e.Enqueue(U); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	rot, ok := e.Active()
	if !ok || rot.Move != U {
		t.Fatalf("Active() = %v, %v, want U running", rot.Move, ok)
	}
	if !rot.Start.Equal(t0) {
		t.Errorf("rotation started at %v, want %v", rot.Start, t0)
	}
	if e.QueueLen() != 0 {
		t.Errorf("QueueLen() = %d, want 0", e.QueueLen())
	}
}

func TestEnqueueRejectsInvalidMove(t *testing.T) {
	e, _ := newTestEngine()
	err := e.Enqueue(Move{Axis: AxisX, Layer: 3})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Enqueue error = %v, want ErrInvalidMove", err)
	}
	if !e.Idle() {
		t.Error("invalid move should not be queued")
	}
}

func TestMovesApplyInIssueOrder(t *testing.T) {
	e, _ := newTestEngine()
	var applied []Move
	e.OnMoveApplied(func(m Move) { applied = append(applied, m) })

	for _, m := range []Move{U, R, FPrime} {
		e.Enqueue(m)
	}
	if got := FormatMoves(e.Pending()); got != "R F'" {
		t.Errorf("Pending() = %q, want %q", got, "R F'")
	}

	// one move per duration, never two in the same rotation slot
	e.Advance(t0.Add(DefaultDuration / 2))
	if len(applied) != 0 {
		t.Fatalf("applied %v before the first rotation finished", applied)
	}
	e.Advance(t0.Add(DefaultDuration))
	if FormatMoves(applied) != "U" {
		t.Fatalf("applied = %v after one duration, want [U]", applied)
	}
	rot, _ := e.Active()
	if rot.Move != R {
		t.Errorf("next rotation = %v, want R", rot.Move)
	}
	if !rot.Start.Equal(t0.Add(DefaultDuration)) {
		t.Errorf("R started at %v, want the frame U completed on", rot.Start)
	}

	e.Drain(t0.Add(DefaultDuration))
	if got := FormatMoves(applied); got != "U R F'" {
		t.Errorf("applied = %q, want %q", got, "U R F'")
	}
	if e.Applied() != 3 {
		t.Errorf("Applied() = %d, want 3", e.Applied())
	}
}

func TestRapidEnqueueNeverDropsOrMerges(t *testing.T) {
	e, clock := newTestEngine()
	var applied []Move
	e.OnMoveApplied(func(m Move) { applied = append(applied, m) })

	// key repeat faster than the animation: one press every 40ms
	issued := []Move{R, R, U, UPrime, L, L, L, D, F, BPrime}
	for _, m := range issued {
		e.Enqueue(m)
		e.Advance(clock.Add(40 * time.Millisecond))
	}
	e.Drain(clock.Now())

	if FormatMoves(applied) != FormatMoves(issued) {
		t.Errorf("applied %q, issued %q", FormatMoves(applied), FormatMoves(issued))
	}
	want := applyAll(t, issued...).Registry().Positions()
	for id, p := range e.Registry().Positions() {
		if p != want[id] {
			t.Errorf("cubelet %d at %v, want %v", id, p, want[id])
		}
	}
}

func TestMoveThenInverseRestoresLayer(t *testing.T) {
	e, _ := newTestEngine()
	before := e.Registry().Cubelets()
	transforms := make(map[int][16]float64)
	for _, c := range before {
		transforms[c.ID] = c.Transform
	}

	e.Enqueue(R)
	e.Enqueue(RPrime)
	e.Drain(t0)

	for _, c := range e.Registry().Cubelets() {
		if c.Position != c.Home {
			t.Errorf("cubelet %d at %v, want %v", c.ID, c.Position, c.Home)
		}
		if [16]float64(c.Transform) != transforms[c.ID] {
			t.Errorf("cubelet %d orientation not restored: %v", c.ID, c.Transform)
		}
	}
}

func TestFourQuarterTurnsRoundTrip(t *testing.T) {
	for _, m := range []Move{U, D, L, R, F, B} {
		e := applyAll(t, m, m, m, m)
		for _, c := range e.Registry().Cubelets() {
			if c.Position != c.Home {
				t.Errorf("%v x 4: cubelet %d at %v, want %v", m, c.ID, c.Position, c.Home)
			}
		}
	}
}

func TestLayersStayPartitionedOverManyMoves(t *testing.T) {
	e, clock := newTestEngine(WithDuration(0), WithStrict(true))
	rng := rand.New(rand.NewSource(1))
	moves := []Move{U, UPrime, D, DPrime, L, LPrime, R, RPrime, F, FPrime, B, BPrime}

	for i := 0; i < 5000; i++ {
		e.Enqueue(moves[rng.Intn(len(moves))])
		e.Advance(clock.Add(time.Millisecond))
		if err := e.Registry().CheckLayers(); err != nil {
			t.Fatalf("after move %d: %v", i+1, err)
		}
	}
	if e.Applied() != 5000 {
		t.Errorf("Applied() = %d, want 5000", e.Applied())
	}
}

func TestBeginRotationWhileRunningHasNoEffect(t *testing.T) {
	e, _ := newTestEngine()
	e.Enqueue(U)
	before := e.Registry().Positions()

	if e.BeginRotation(R) {
		t.Fatal("BeginRotation should refuse while U is running")
	}
	for id, p := range e.Registry().Positions() {
		if p != before[id] {
			t.Errorf("cubelet %d moved from %v to %v", id, before[id], p)
		}
	}

	e.Drain(t0)
	if e.Applied() != 1 {
		t.Errorf("Applied() = %d, want 1", e.Applied())
	}
}

func TestBeginRotationKeepsQueueOrder(t *testing.T) {
	e, _ := newTestEngine()
	e.Enqueue(U)
	e.Enqueue(R)

	var begun bool
	e.OnMoveApplied(func(m Move) {
		if m == U {
			begun = e.BeginRotation(F)
		}
	})

	e.Advance(t0.Add(DefaultDuration))
	if begun {
		t.Error("BeginRotation from a callback should be refused")
	}
	if rot, ok := e.Active(); !ok || rot.Move != R {
		t.Fatalf("Active() = %v, want the queued R", rot.Move)
	}
	if e.BeginRotation(F) {
		t.Error("BeginRotation should refuse while R is running")
	}

	e.Drain(t0.Add(DefaultDuration))
	if !e.BeginRotation(F) {
		t.Error("BeginRotation should start on an idle engine")
	}
}

func TestDriftedMoveIsSkipped(t *testing.T) {
	e, _ := newTestEngine()
	e.Registry().Cubelet(0).Position = Coord{1, 1, 1}

	var skipped []Move
	var skipErr error
	e.OnInvariantViolation(func(m Move, err error) {
		skipped = append(skipped, m)
		skipErr = err
	})

	equator := Move{Axis: AxisY, Layer: 0, Clockwise: true}
	e.Enqueue(R)
	e.Enqueue(equator)

	if FormatMoves(skipped) != "R" {
		t.Fatalf("skipped = %v, want [R]", skipped)
	}
	if !errors.Is(skipErr, ErrLayerDrift) {
		t.Errorf("skip error = %v, want ErrLayerDrift", skipErr)
	}
	rot, ok := e.Active()
	if !ok || rot.Move != equator {
		t.Errorf("Active() = %v, want E", rot.Move)
	}
}

func TestDriftedMovePanicsInStrictMode(t *testing.T) {
	e, _ := newTestEngine(WithStrict(true))
	e.Registry().Cubelet(0).Position = Coord{1, 1, 1}

	defer func() {
		if r := recover(); r == nil {
			t.Error("strict engine should panic on layer drift")
		}
	}()
	e.Enqueue(R)
}

func TestCallbacksCannotAdvance(t *testing.T) {
	e, _ := newTestEngine(WithDuration(0))
	var advanceErr error
	e.OnMoveApplied(func(m Move) {
		advanceErr = e.Advance(t0)
		if m == U {
			e.Enqueue(F)
		}
	})

	e.Enqueue(U)
	if rot, ok := e.Active(); !ok || rot.Move != U {
		t.Fatalf("Active() = %v, want U", rot.Move)
	}

	e.Advance(t0)
	if !errors.Is(advanceErr, ErrReentrant) {
		t.Errorf("Advance from callback = %v, want ErrReentrant", advanceErr)
	}
	rot, ok := e.Active()
	if !ok || rot.Move != F {
		t.Errorf("move enqueued from the callback should start next, got %v", rot.Move)
	}

	e.Drain(t0)
	if e.Applied() != 2 {
		t.Errorf("Applied() = %d, want 2", e.Applied())
	}
}

func TestResetRefusedWhileRunning(t *testing.T) {
	e, _ := newTestEngine()
	e.Enqueue(U)
	e.Enqueue(R)

	if err := e.Reset(); !errors.Is(err, ErrRotationActive) {
		t.Fatalf("Reset() = %v, want ErrRotationActive", err)
	}

	e.Drain(t0)
	if err := e.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	if !e.IsSolved() || e.Applied() != 0 {
		t.Errorf("after reset: solved=%v applied=%d", e.IsSolved(), e.Applied())
	}
}

func TestDrainKeepsManualClockInStep(t *testing.T) {
	e, clock := newTestEngine(WithFrameRate(10))
	e.Enqueue(U)

	end, frames := e.Drain(t0)
	if frames != 3 {
		t.Errorf("frames = %d, want 3 at 10 fps for a 300ms turn", frames)
	}
	if !clock.Now().Equal(end) {
		t.Errorf("clock at %v, want %v", clock.Now(), end)
	}
}

func TestFrameRateOutOfRangeKeepsDefault(t *testing.T) {
	for _, fps := range []int{-1, 0, MaxFrameRate + 1, 2_000_000_000} {
		e, _ := newTestEngine(WithFrameRate(fps))
		if got, want := e.FrameInterval(), time.Second/DefaultFrameRate; got != want {
			t.Errorf("WithFrameRate(%d): FrameInterval() = %s, want %s", fps, got, want)
		}
	}

	e, _ := newTestEngine(WithFrameRate(MaxFrameRate))
	if got := e.FrameInterval(); got != time.Millisecond {
		t.Errorf("FrameInterval() at %d fps = %s, want 1ms", MaxFrameRate, got)
	}
	e.Enqueue(U)
	end, frames := e.Drain(t0)
	if !e.Idle() || frames != 300 {
		t.Errorf("Drain at %d fps: idle=%v frames=%d, want 300", MaxFrameRate, e.Idle(), frames)
	}
	if !end.Equal(t0.Add(DefaultDuration)) {
		t.Errorf("Drain ended at %v", end)
	}
}

func TestEngineIDIsUnique(t *testing.T) {
	a, b := New(), New()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("engine ids %q and %q should be distinct", a.ID(), b.ID())
	}
}
