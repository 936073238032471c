package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
)

// identifyNoShows returns the names of active roster employees with no
// matched entry, in roster order, each at most once.
func identifyNoShows(entries []attendance.ParsedEntry, roster []employee.Employee) []string {
	matched := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.EmployeeID != nil {
			matched[*e.EmployeeID] = struct{}{}
		}
	}

	var noShows []string
	for _, emp := range roster {
		if !emp.IsActive() {
			continue
		}
		if _, ok := matched[emp.ID]; !ok {
			noShows = append(noShows, emp.FullName)
		}
	}
	return noShows
}

// summarize folds entries and the no-show list into the day's histogram.
func summarize(entries []attendance.ParsedEntry, noShows []string) attendance.ParseSummary {
	s := attendance.ParseSummary{
		TotalEntries:   len(entries),
		NoShows:        len(noShows),
		TotalDeduction: decimal.Zero,
	}

	for _, e := range entries {
		switch e.Status {
		case attendance.StatusCheckIn:
			s.CheckIns++
		case attendance.StatusApprovedAbsence:
			s.ApprovedAbsences++
		case attendance.StatusWorkFromHome:
			s.WorkFromHome++
		}
		if e.IsLate {
			s.LateArrivals++
		}
		if e.EmployeeID == nil {
			s.Unmatched++
		}
		s.TotalDeduction = s.TotalDeduction.Add(e.Deduction)
	}

	return s
}

// validateEntries produces the advisory error list: one message per
// unmatched name and one per undeterminable status. A non-empty list never
// blocks parsing; downstream import steps decide what to do with it.
func validateEntries(entries []attendance.ParsedEntry) []string {
	var errs []string
	for _, e := range entries {
		if e.EmployeeID == nil {
			errs = append(errs, fmt.Sprintf("Unknown employee: %s", e.RawName))
		}
		if e.Status == attendance.StatusUnknown {
			errs = append(errs, fmt.Sprintf("Could not determine status for: %s", e.RawName))
		}
	}
	return errs
}
