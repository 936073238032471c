package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestComputeLateness(t *testing.T) {
	rules := attendance.DefaultRules() // start 10:00 AM, grace 5

	tests := []struct {
		name        string
		checkIn     *string
		emp         *employee.Employee
		status      attendance.EntryStatus
		wantLate    bool
		wantMinutes int
	}{
		{
			name:    "on time",
			checkIn: strPtr("9:55 AM"),
			status:  attendance.StatusCheckIn,
		},
		{
			name:    "exactly at grace boundary is on time",
			checkIn: strPtr("10:05 AM"),
			status:  attendance.StatusCheckIn,
		},
		{
			name:        "one minute past grace",
			checkIn:     strPtr("10:06 AM"),
			status:      attendance.StatusCheckIn,
			wantLate:    true,
			wantMinutes: 1,
		},
		{
			name:        "well past grace",
			checkIn:     strPtr("11:00 AM"),
			status:      attendance.StatusCheckIn,
			wantLate:    true,
			wantMinutes: 55,
		},
		{
			name:    "no check-in token",
			checkIn: nil,
			status:  attendance.StatusCheckIn,
		},
		{
			name:    "approved absence never late",
			checkIn: strPtr("2:00 PM"),
			status:  attendance.StatusApprovedAbsence,
		},
		{
			name:    "wfh never late",
			checkIn: strPtr("2:00 PM"),
			status:  attendance.StatusWorkFromHome,
		},
		{
			name:        "employee start time override",
			checkIn:     strPtr("9:30 AM"),
			emp:         &employee.Employee{StartTime: strPtr("9:00 AM")},
			status:      attendance.StatusCheckIn,
			wantLate:    true,
			wantMinutes: 25,
		},
		{
			name:    "employee grace override",
			checkIn: strPtr("10:20 AM"),
			emp:     &employee.Employee{GraceMinutes: intPtr(30)},
			status:  attendance.StatusCheckIn,
		},
		{
			name:    "unparseable time fails open",
			checkIn: strPtr("sometime after lunch"),
			status:  attendance.StatusCheckIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			late, minutes := computeLateness(tt.checkIn, tt.emp, tt.status, rules)
			assert.Equal(t, tt.wantLate, late)
			assert.Equal(t, tt.wantMinutes, minutes)
		})
	}
}

// A positive minute count and the late flag always travel together.
func TestLatenessFlagMatchesMinutes(t *testing.T) {
	rules := attendance.DefaultRules()
	for _, token := range []string{"9:00 AM", "10:04 AM", "10:05 AM", "10:06 AM", "12:30 PM"} {
		late, minutes := computeLateness(strPtr(token), nil, attendance.StatusCheckIn, rules)
		assert.Equal(t, late, minutes > 0, "token %s", token)
	}
}
