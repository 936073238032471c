package attendance

import (
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ParseTextRequest struct {
	Text string `json:"text"`
}

func (r *ParseTextRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ParsedEntryResponse struct {
	RawName           string  `json:"raw_name"`
	EmployeeID        *string `json:"employee_id,omitempty"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	CheckInTime       *string `json:"check_in_time,omitempty"`
	Status            string  `json:"status"`
	IsLate            bool    `json:"is_late"`
	MinutesLate       int     `json:"minutes_late"`
	Confidence        float64 `json:"confidence"`
	DayRateApplicable bool    `json:"day_rate_applicable"`
	Deduction         string  `json:"deduction"`
	DeductionReason   *string `json:"deduction_reason,omitempty"`
	ETATime           *string `json:"eta_time,omitempty"`
	ApprovalCode      *string `json:"approval_code,omitempty"`
}

type ParseSummaryResponse struct {
	TotalEntries     int    `json:"total_entries"`
	CheckIns         int    `json:"check_ins"`
	ApprovedAbsences int    `json:"approved_absences"`
	WorkFromHome     int    `json:"work_from_home"`
	LateArrivals     int    `json:"late_arrivals"`
	NoShows          int    `json:"no_shows"`
	Unmatched        int    `json:"unmatched"`
	TotalDeduction   string `json:"total_deduction"`
}

type ParseResultResponse struct {
	Date            string                `json:"date"`
	Entries         []ParsedEntryResponse `json:"entries"`
	UnmatchedNames  []string              `json:"unmatched_names"`
	ParseErrors     []string              `json:"parse_errors"`
	NoShowEmployees []string              `json:"no_show_employees"`
	Summary         ParseSummaryResponse  `json:"summary"`
	UsedFallback    bool                  `json:"used_fallback"`
}

type ImportResponse struct {
	ID        string              `json:"id"`
	Date      string              `json:"date"`
	Result    ParseResultResponse `json:"result"`
	CreatedAt string              `json:"created_at"`
}

type ListImportResponse struct {
	TotalCount int64            `json:"total_count"`
	Imports    []ImportResponse `json:"imports"`
}

type HistoryRecordResponse struct {
	ImportID    string  `json:"import_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	CheckInTime *string `json:"check_in_time,omitempty"`
	IsLate      bool    `json:"is_late"`
	MinutesLate int     `json:"minutes_late"`
	Deduction   string  `json:"deduction"`
}

type EmployeeHistoryResponse struct {
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	Records      []HistoryRecordResponse `json:"records"`
}
