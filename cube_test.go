package gocube

import (
	"testing"
	"time"
)

// applyAll runs moves through an engine with instant rotations.
func applyAll(t *testing.T, moves ...Move) *Engine {
	t.Helper()
	e := New(WithDuration(0), WithStrict(true))
	for _, m := range moves {
		if err := e.Enqueue(m); err != nil {
			t.Fatalf("enqueue %v: %v", m, err)
		}
	}
	e.Drain(time.Unix(0, 0))
	return e
}

func TestNewCubeIsSolved(t *testing.T) {
	e := New()
	if !e.IsSolved() {
		t.Error("New cube should be solved")
		t.Log(e.Facelets().String())
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	e := applyAll(t, R)
	if e.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestFourTurnsReturnToSolved_AllFaces(t *testing.T) {
	for _, m := range []Move{U, D, L, R, F, B, UPrime, BPrime} {
		e := applyAll(t, m, m, m, m)
		if !e.IsSolved() {
			t.Errorf("%v x 4 should return to solved", m)
			t.Log(e.Facelets().String())
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	var moves []Move
	for i := 0; i < 6; i++ {
		moves = append(moves, SexyMove...)
	}
	e := applyAll(t, moves...)
	if !e.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(e.Facelets().String())
	}
}

func TestSexyMove_Once_NotSolved(t *testing.T) {
	e := applyAll(t, SexyMove...)
	if e.IsSolved() {
		t.Error("Sexy move once should not leave the cube solved")
	}
}

func TestUMoveBringsRightStickersToFront(t *testing.T) {
	f := applyAll(t, U).Facelets()

	for i := 0; i < 3; i++ {
		if f.Colors[CubeFaceF][i] != Red {
			t.Errorf("F[%d] = %v, want R", i, f.Colors[CubeFaceF][i])
		}
		if f.Colors[CubeFaceL][i] != Green {
			t.Errorf("L[%d] = %v, want G", i, f.Colors[CubeFaceL][i])
		}
	}
	for i := 0; i < 9; i++ {
		if f.Colors[CubeFaceU][i] != White {
			t.Errorf("U[%d] = %v, want W", i, f.Colors[CubeFaceU][i])
		}
	}
	for i := 3; i < 9; i++ {
		if f.Colors[CubeFaceF][i] != Green {
			t.Errorf("F[%d] = %v, want G", i, f.Colors[CubeFaceF][i])
		}
	}
	if t.Failed() {
		t.Log(f.String())
	}
}

func TestFaceletsCoverEveryCubelet(t *testing.T) {
	f := applyAll(t, R, U, FPrime, L, D, B).Facelets()

	stickers := make(map[int]int)
	for face := 0; face < 6; face++ {
		for i := 0; i < 9; i++ {
			stickers[f.Cubelets[face][i]]++
		}
	}
	if len(stickers) != NumCubelets {
		t.Fatalf("stickers on %d cubelets, want %d", len(stickers), NumCubelets)
	}

	r := NewRegistry(0)
	for _, c := range r.Cubelets() {
		want := 0
		for _, v := range []int{c.Home.X, c.Home.Y, c.Home.Z} {
			if v != 0 {
				want++
			}
		}
		if stickers[c.ID] != want {
			t.Errorf("cubelet %d has %d stickers, want %d", c.ID, stickers[c.ID], want)
		}
	}
}

func TestFaceletsString(t *testing.T) {
	s := New().Facelets().String()
	want := "      W W W \n"
	if s[:len(want)] != want {
		t.Errorf("first row = %q, want %q", s[:len(want)], want)
	}
}
