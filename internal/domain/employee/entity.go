package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	FullName   string
	ChatHandle string
	HourlyRate decimal.Decimal
	Status     Status

	// Optional per-employee overrides for the attendance rules. Nil means
	// the configured defaults apply.
	StartTime    *string // "H:MM AM/PM"
	Timezone     *string // IANA name, e.g. "Asia/Manila"
	GraceMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (e Employee) IsActive() bool {
	return e.Status == StatusActive && e.DeletedAt == nil
}
