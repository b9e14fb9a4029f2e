package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidProduction = errors.New("invalid production value")
	ErrInvalidCell       = errors.New("invalid cell")

	// Decision errors
	ErrNotPlayerCell   = errors.New("cell is not owned by the player")
	ErrUnknownStrategy = errors.New("unknown strategy")

	// Session errors
	ErrGameNotFound     = errors.New("game not found")
	ErrGameExpired      = errors.New("game has expired")
	ErrInvalidPlayerTag = errors.New("invalid player tag")
)
