package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceEvent is a raw timestamped chat event from the ingestion step.
type AttendanceEvent struct {
	ChatHandle string
	Message    string
	Timestamp  float64 // seconds since epoch, fractional
	Date       string  // "2006-01-02"
}

// AttendanceLog is one employee's derived record for one day.
type AttendanceLog struct {
	EmployeeID  string
	Date        string
	CheckIn     *time.Time
	CheckOut    *time.Time
	IsLate      bool
	IsOffline   bool
	HoursWorked float64
}

// Rules configures the structured pipeline.
type Rules struct {
	StandardWorkHours  float64
	OvertimeMultiplier decimal.Decimal
	GraceMinutes       int
	LateDeduction      decimal.Decimal
	OfflineDeduction   decimal.Decimal
}

// DefaultRules returns the structured pipeline defaults: an 8 hour day,
// 1.5x overtime, 5 minute grace, $10 per late day and $50 per offline day.
func DefaultRules() Rules {
	return Rules{
		StandardWorkHours:  8,
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
		GraceMinutes:       5,
		LateDeduction:      decimal.NewFromInt(10),
		OfflineDeduction:   decimal.NewFromInt(50),
	}
}

// StandardStartHour is the fixed 9:00 AM start of the structured pipeline.
// Distinct from the free-text pipeline's configurable default start.
const StandardStartHour = 9

// Summary is the per-employee payroll outcome for one run.
type Summary struct {
	EmployeeID        string
	EmployeeName      string
	HourlyRate        decimal.Decimal
	TotalHours        float64
	RegularHours      float64
	OvertimeHours     float64
	LateDays          int
	OfflineDays       int
	LateDeductions    decimal.Decimal
	OfflineDeductions decimal.Decimal
	GrossPay          decimal.Decimal
	NetPay            decimal.Decimal
}

// Run is a persisted payroll calculation.
type Run struct {
	ID         string
	PeriodFrom string
	PeriodTo   string
	Rules      Rules
	Summaries  []Summary
	CreatedAt  time.Time
}
