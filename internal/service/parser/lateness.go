package parser

import (
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/clock"
)

// computeLateness compares a check-in token against the employee's start
// time (or the rules default) plus grace. The boundary is exclusive: a
// check-in exactly at start+grace is on time. Any unparseable time fails
// open to not-late.
func computeLateness(checkIn *string, emp *employee.Employee, status attendance.EntryStatus, rules attendance.Rules) (bool, int) {
	if checkIn == nil {
		return false, 0
	}
	if status == attendance.StatusApprovedAbsence || status == attendance.StatusWorkFromHome {
		return false, 0
	}

	start := rules.DefaultStartTime
	grace := rules.GraceMinutes
	if emp != nil {
		if emp.StartTime != nil {
			start = *emp.StartTime
		}
		if emp.GraceMinutes != nil {
			grace = *emp.GraceMinutes
		}
	}

	checkInMins, err := clock.MinutesOfDay(*checkIn)
	if err != nil {
		return false, 0
	}
	startMins, err := clock.MinutesOfDay(start)
	if err != nil {
		return false, 0
	}

	minutesLate := checkInMins - startMins - grace
	if minutesLate <= 0 {
		return false, 0
	}
	return true, minutesLate
}
