package payroll

import "errors"

// Payroll domain errors
var (
	ErrRunNotFound       = errors.New("payroll run not found")
	ErrNoEvents          = errors.New("no attendance events supplied")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
