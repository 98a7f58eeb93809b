package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Status cell errors
	ErrInvalidStatus = errors.New("invalid status")

	// Validation errors
	ErrNameRequired = errors.New("name is required")
)
