package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus classifies a single parsed attendance section.
type EntryStatus string

const (
	StatusCheckIn         EntryStatus = "check_in"
	StatusApprovedAbsence EntryStatus = "approved_absence"
	StatusWorkFromHome    EntryStatus = "work_from_home"
	StatusETADelayed      EntryStatus = "eta_delayed"
	StatusNoShow          EntryStatus = "no_show"
	StatusUnknown         EntryStatus = "unknown"
)

// ParsedEntry is one person's section of the attendance blob after parsing.
type ParsedEntry struct {
	RawName           string
	EmployeeID        *string
	CheckInTime       *string
	Status            EntryStatus
	IsLate            bool
	MinutesLate       int
	Confidence        float64
	DayRateApplicable bool
	Deduction         decimal.Decimal
	DeductionReason   *string
	ETATime           *string
	ApprovalCode      *string
}

// ParseSummary holds the per-status counts for one parse run.
type ParseSummary struct {
	TotalEntries     int
	CheckIns         int
	ApprovedAbsences int
	WorkFromHome     int
	LateArrivals     int
	NoShows          int
	Unmatched        int
	TotalDeduction   decimal.Decimal
}

// ParseResult is the full outcome of parsing one attendance blob.
type ParseResult struct {
	Date            string
	Entries         []ParsedEntry
	UnmatchedNames  []string
	ParseErrors     []string
	NoShowEmployees []string
	Summary         ParseSummary
}

// Rules configures the free-text pipeline. A zero PenaltyPerMinute means
// lateness is flagged but not charged, which is the product default.
type Rules struct {
	DefaultStartTime string
	GraceMinutes     int
	PenaltyPerMinute decimal.Decimal
	DayRate          decimal.Decimal
}

// DefaultRules returns the free-text pipeline defaults.
func DefaultRules() Rules {
	return Rules{
		DefaultStartTime: "10:00 AM",
		GraceMinutes:     5,
		PenaltyPerMinute: decimal.Zero,
		DayRate:          decimal.Zero,
	}
}

// Import is a persisted parse run.
type Import struct {
	ID        string
	Date      string
	RawText   string
	Result    ParseResult
	CreatedAt time.Time
}

// EmployeeEntry is one matched entry row as seen from an employee's
// attendance history, i.e. across imports rather than within one.
type EmployeeEntry struct {
	ImportID string
	Date     string
	Entry    ParsedEntry
}
