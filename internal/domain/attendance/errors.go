package attendance

import "errors"

// Attendance domain errors
var (
	ErrEmptyText       = errors.New("attendance text is empty")
	ErrImportNotFound  = errors.New("attendance import not found")
	ErrFallbackFailure = errors.New("fallback parser failed")
)
