package payroll

import (
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL DTOs
// ========================================

type EventRequest struct {
	ChatHandle string  `json:"chat_handle"`
	Message    string  `json:"message"`
	Timestamp  float64 `json:"timestamp"`
	Date       string  `json:"date"`
}

type SummarizeRequest struct {
	Events []EventRequest `json:"events"`

	// Optional rule overrides; zero values fall back to the configured rules.
	StandardWorkHours  *float64 `json:"standard_work_hours"`
	OvertimeMultiplier *string  `json:"overtime_multiplier"`
	GraceMinutes       *int     `json:"grace_minutes"`
	LateDeduction      *string  `json:"late_deduction"`
	OfflineDeduction   *string  `json:"offline_deduction"`
}

func (r *SummarizeRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, ev := range r.Events {
		if validator.IsEmpty(ev.ChatHandle) {
			errs = append(errs, validator.ValidationError{
				Field:   "events",
				Message: "every event needs a chat_handle",
			})
			break
		}
	}

	for _, ev := range r.Events {
		if _, ok := validator.IsValidDate(ev.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "events",
				Message: "every event needs a date formatted YYYY-MM-DD",
			})
			break
		}
	}

	if r.StandardWorkHours != nil && *r.StandardWorkHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_hours",
			Message: "standard_work_hours must be positive",
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

type AttendanceLogResponse struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	CheckIn     *string `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	IsLate      bool    `json:"is_late"`
	IsOffline   bool    `json:"is_offline"`
	HoursWorked float64 `json:"hours_worked"`
}

type SummaryResponse struct {
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      string  `json:"employee_name"`
	HourlyRate        string  `json:"hourly_rate"`
	TotalHours        float64 `json:"total_hours"`
	RegularHours      float64 `json:"regular_hours"`
	OvertimeHours     float64 `json:"overtime_hours"`
	LateDays          int     `json:"late_days"`
	OfflineDays       int     `json:"offline_days"`
	LateDeductions    string  `json:"late_deductions"`
	OfflineDeductions string  `json:"offline_deductions"`
	GrossPay          string  `json:"gross_pay"`
	NetPay            string  `json:"net_pay"`
}

type RunResponse struct {
	ID         string                  `json:"id"`
	PeriodFrom string                  `json:"period_from"`
	PeriodTo   string                  `json:"period_to"`
	Logs       []AttendanceLogResponse `json:"logs,omitempty"`
	Summaries  []SummaryResponse       `json:"summaries"`
	CreatedAt  string                  `json:"created_at"`
}

type ListRunResponse struct {
	TotalCount int64         `json:"total_count"`
	Runs       []RunResponse `json:"runs"`
}
