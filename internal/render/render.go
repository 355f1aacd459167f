// Package render draws the cube and the engine status for terminal hosts.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	gocube "github.com/SeamusWaldron/gocube_animator"
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	MoveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	SolvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Sticker colors in the standard scheme.
var stickerColors = map[gocube.Color]lipgloss.Color{
	gocube.White:  lipgloss.Color("#FFFFFF"),
	gocube.Yellow: lipgloss.Color("#FFD500"),
	gocube.Green:  lipgloss.Color("#009B48"),
	gocube.Blue:   lipgloss.Color("#0046AD"),
	gocube.Red:    lipgloss.Color("#B71234"),
	gocube.Orange: lipgloss.Color("#FF5800"),
}

// MaxPending caps how many queued moves the status line lists.
const MaxPending = 20

// Snapshot is everything a frame shows, read from the engine once per frame.
type Snapshot struct {
	Facelets gocube.Facelets
	Active   gocube.Rotation
	Running  bool
	Pending  []gocube.Move
	Applied  int
	Solved   bool
}

// Capture reads a snapshot from e.
func Capture(e *gocube.Engine) Snapshot {
	f := e.Facelets()
	active, running := e.Active()
	return Snapshot{
		Facelets: f,
		Active:   active,
		Running:  running,
		Pending:  e.Pending(),
		Applied:  e.Applied(),
		Solved:   f.IsSolved(),
	}
}

// carrying reports whether cubelet id turns with the active rotation.
func (s Snapshot) carrying(id int) bool {
	if !s.Running {
		return false
	}
	for _, sel := range s.Active.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Net draws the unfolded cube:
//
//	      U
//	L  F  R  B
//	      D
//
// Stickers on the turning layer are bracketed.
func (s Snapshot) Net() string {
	var b strings.Builder
	blank := strings.Repeat(" ", 9)

	row := func(face gocube.CubeFace, r int) {
		for col := 0; col < 3; col++ {
			i := r*3 + col
			b.WriteString(s.sticker(s.Facelets.Colors[face][i], s.carrying(s.Facelets.Cubelets[face][i])))
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString(blank)
		row(gocube.CubeFaceU, r)
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		for _, face := range []gocube.CubeFace{gocube.CubeFaceL, gocube.CubeFaceF, gocube.CubeFaceR, gocube.CubeFaceB} {
			row(face, r)
		}
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(blank)
		row(gocube.CubeFaceD, r)
		b.WriteString("\n")
	}
	return b.String()
}

func (s Snapshot) sticker(c gocube.Color, turning bool) string {
	text := " " + c.String() + " "
	if turning {
		text = "[" + c.String() + "]"
	}
	return lipgloss.NewStyle().
		Background(stickerColors[c]).
		Foreground(lipgloss.Color("#000000")).
		Render(text)
}

// ProgressBar renders p in [0, 1] as a bar width cells wide.
func ProgressBar(p float64, width int) string {
	if width <= 0 {
		return ""
	}
	p = math.Max(0, math.Min(1, p))
	filled := int(math.Round(p * float64(width)))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// Status describes the running move, the queue and the solved state.
func (s Snapshot) Status() string {
	var b strings.Builder

	if s.Running {
		fmt.Fprintf(&b, "Turning: %s %s %3.0f%%\n",
			MoveStyle.Render(fmt.Sprintf("%-2s", s.Active.Move.Notation())),
			ProgressBar(s.Active.Progress, 20),
			s.Active.Progress*100,
		)
	} else {
		b.WriteString(StatusStyle.Render("Idle"))
		b.WriteString("\n")
	}

	if len(s.Pending) > 0 {
		shown := s.Pending
		more := ""
		if len(shown) > MaxPending {
			more = fmt.Sprintf(" ... +%d", len(shown)-MaxPending)
			shown = shown[:MaxPending]
		}
		fmt.Fprintf(&b, "Queue: %s%s\n", MoveStyle.Render(gocube.FormatMoves(shown)), more)
	}

	fmt.Fprintf(&b, "Moves: %d", s.Applied)
	if s.Solved && !s.Running {
		b.WriteString("  ")
		b.WriteString(SolvedStyle.Render("SOLVED"))
	}
	b.WriteString("\n")
	return b.String()
}

// View is the full frame: net followed by status.
func (s Snapshot) View() string {
	return s.Net() + "\n" + s.Status()
}
