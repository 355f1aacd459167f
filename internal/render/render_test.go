package render

import (
	"strings"
	"testing"
	"time"

	gocube "github.com/SeamusWaldron/gocube_animator"
)

func newEngine() (*gocube.Engine, *gocube.ManualClock) {
	clock := gocube.NewManualClock(time.Unix(0, 0))
	e := gocube.New(gocube.WithClock(clock), gocube.WithDuration(100*time.Millisecond))
	return e, clock
}

func TestNetShowsEveryStickerOnce(t *testing.T) {
	e, _ := newEngine()
	net := Capture(e).Net()

	for _, c := range []string{"W", "Y", "G", "B", "R", "O"} {
		if n := strings.Count(net, c); n != 9 {
			t.Errorf("net shows %d %s stickers, want 9", n, c)
		}
	}
	if strings.Count(net, "\n") != 9 {
		t.Errorf("net has %d rows, want 9", strings.Count(net, "\n"))
	}
}

func TestNetBracketsTurningLayer(t *testing.T) {
	e, clock := newEngine()
	if err := e.Enqueue(gocube.U); err != nil {
		t.Fatal(err)
	}
	_ = e.Advance(clock.Add(50 * time.Millisecond))

	s := Capture(e)
	if !s.Running {
		t.Fatal("U should be running")
	}
	// 9 stickers on top plus 3 on each of the four side faces.
	if n := strings.Count(s.Net(), "]"); n != 21 {
		t.Errorf("%d stickers bracketed, want 21", n)
	}

	e.Drain(clock.Now())
	if n := strings.Count(Capture(e).Net(), "]"); n != 0 {
		t.Errorf("%d stickers bracketed when idle, want 0", n)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p     float64
		width int
		want  string
	}{
		{0, 4, "[    ]"},
		{0.5, 4, "[==  ]"},
		{1, 4, "[====]"},
		{1.7, 4, "[====]"},
		{-1, 2, "[  ]"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.p, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%g, %d) = %q, want %q", tt.p, tt.width, got, tt.want)
		}
	}
}

func TestStatusListsQueue(t *testing.T) {
	e, _ := newEngine()
	for _, m := range gocube.SexyMove {
		if err := e.Enqueue(m); err != nil {
			t.Fatal(err)
		}
	}

	status := Capture(e).Status()
	if !strings.Contains(status, "Turning:") {
		t.Errorf("status does not show the running move:\n%s", status)
	}
	if !strings.Contains(status, "U R' U'") {
		t.Errorf("status does not list the queue:\n%s", status)
	}
	if strings.Contains(status, "SOLVED") {
		t.Errorf("status claims solved while turning:\n%s", status)
	}
}

func TestStatusSolvedWhenIdle(t *testing.T) {
	e, _ := newEngine()
	status := Capture(e).Status()
	if !strings.Contains(status, "Idle") || !strings.Contains(status, "SOLVED") {
		t.Errorf("status = %q", status)
	}
}
