package response

import (
	"errors"
	"net/http"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrChatHandleExists):
		Conflict(w, "Chat handle already registered")
	case errors.Is(err, employee.ErrEmptyRoster):
		BadRequest(w, "No active employees on the roster", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmptyText):
		BadRequest(w, "Attendance text is empty", nil)
	case errors.Is(err, attendance.ErrImportNotFound):
		NotFound(w, "Import not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrNoEvents):
		BadRequest(w, "No attendance events supplied", nil)
	case errors.Is(err, payroll.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format, use csv or xlsx", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
