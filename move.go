package gocube

import (
	"fmt"
	"strings"
)

// Move is a quarter turn of one layer.
//
// Every cubelet whose logical position on Axis equals Layer is rotated by
// 90 degrees. Clockwise is judged looking at the layer from the positive end
// of Axis toward the origin; Clockwise == false is the inverse turn.
type Move struct {
	Axis      Axis // Rotation axis
	Layer     int  // -1, 0 or 1
	Clockwise bool // Direction of the quarter turn
}

// Valid reports whether the move names an existing layer.
func (m Move) Valid() bool {
	return m.Axis.Valid() && inUnit(m.Layer)
}

// Inverse returns the move that undoes m.
// U becomes U', U' becomes U.
func (m Move) Inverse() Move {
	m.Clockwise = !m.Clockwise
	return m
}

// Face returns the letter of the layer: U, D, L, R, F, B for the outer
// layers and M, E, S for the middle layers about x, y and z.
func (m Move) Face() string {
	if f, ok := layerFaces[layerKey{m.Axis, m.Layer}]; ok {
		return f
	}
	return fmt.Sprintf("%s%d", m.Axis, m.Layer)
}

// Notation returns the notation string for this move.
// Examples: U, U', R, R'
func (m Move) Notation() string {
	if m.Clockwise {
		return m.Face()
	}
	return m.Face() + "'"
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

type layerKey struct {
	axis  Axis
	layer int
}

var layerFaces = map[layerKey]string{
	{AxisY, 1}:  "U",
	{AxisY, -1}: "D",
	{AxisX, -1}: "L",
	{AxisX, 1}:  "R",
	{AxisZ, 1}:  "F",
	{AxisZ, -1}: "B",
	{AxisX, 0}:  "M",
	{AxisY, 0}:  "E",
	{AxisZ, 0}:  "S",
}

// ParseMove parses one of the six face moves with an optional prime.
// Examples: U, U', r, B`
// Middle layers and double turns are not accepted.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	move, ok := faceMoves[strings.ToUpper(s[:1])]
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
	case "'", "`":
		move = move.Inverse()
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return move, nil
}

// ParseMoves parses a space-separated sequence of face moves.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
