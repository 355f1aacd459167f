package gocube

import "errors"

// Sentinel errors for the gocube package.
var (
	// Move errors
	ErrInvalidMove     = errors.New("gocube: invalid move")
	ErrInvalidNotation = errors.New("gocube: invalid move notation")

	// Invariant violations
	ErrLayerDrift        = errors.New("gocube: layer selection drifted")
	ErrPositionCollision = errors.New("gocube: cubelet positions collide")
	ErrReentrant         = errors.New("gocube: re-entrant engine call")

	// State errors
	ErrRotationActive = errors.New("gocube: rotation in progress")
	ErrUnknownKeyMap  = errors.New("gocube: unknown key map")
)
