package dto

import "errors"

// Request errors
var (
	// ErrNilRequest indicates a nil validation request
	ErrNilRequest = errors.New("validation request is nil")
	// ErrEmptyRequest indicates a request naming neither an inline graph nor a stored id
	ErrEmptyRequest = errors.New("validation request names no graph")
)

// Check errors
var (
	// ErrMalformedSpec wraps shape-gate rejections surfaced by the checker
	ErrMalformedSpec = errors.New("malformed graph spec")
)
