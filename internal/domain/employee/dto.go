package employee

import (
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name"`
	ChatHandle   string  `json:"chat_handle"`
	HourlyRate   string  `json:"hourly_rate"`
	Status       *string `json:"status"`
	StartTime    *string `json:"start_time"`
	Timezone     *string `json:"timezone"`
	GraceMinutes *int    `json:"grace_minutes"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.ChatHandle) {
		errs = append(errs, validator.ValidationError{
			Field:   "chat_handle",
			Message: "chat_handle is required",
		})
	}

	rate, err := decimal.NewFromString(r.HourlyRate)
	if err != nil || !rate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a positive decimal",
		})
	}

	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must look like H:MM AM/PM",
		})
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name"`
	ChatHandle   *string `json:"chat_handle"`
	HourlyRate   *string `json:"hourly_rate"`
	Status       *string `json:"status"`
	StartTime    *string `json:"start_time"`
	Timezone     *string `json:"timezone"`
	GraceMinutes *int    `json:"grace_minutes"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.HourlyRate != nil {
		rate, err := decimal.NewFromString(*r.HourlyRate)
		if err != nil || !rate.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_rate",
				Message: "hourly_rate must be a positive decimal",
			})
		}
	}

	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must look like H:MM AM/PM",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	ChatHandle   string  `json:"chat_handle"`
	HourlyRate   string  `json:"hourly_rate"`
	Status       string  `json:"status"`
	StartTime    *string `json:"start_time,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	GraceMinutes *int    `json:"grace_minutes,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Employees  []EmployeeResponse `json:"employees"`
}
