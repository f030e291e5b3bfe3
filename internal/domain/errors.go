package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidStatus is returned when a status token is neither
	// "complete" nor "incomplete".
	ErrInvalidStatus = errors.New("invalid todo status")

	// ErrEmptyTitle is returned when a todo has no title.
	ErrEmptyTitle = errors.New("todo title is required")
)
