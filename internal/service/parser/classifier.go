package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/clock"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/namematch"
)

// Status patterns, tested in fixed priority order regardless of where the
// phrase sits in the section. First hit wins.
var (
	approvedAbsenceRegex = regexp.MustCompile(`(?i)(\bout\b\s*[-–]?[^\n]*\bapproved\b|\bapproved\s+leave\b|\bsick\s+leave\b[^\n]*\bapproved\b)`)
	wfhRegex             = regexp.MustCompile(`(?i)\b(wfh|work\s+from\s+home|remote)\b`)
	etaRegex             = regexp.MustCompile(`(?i)\beta\b[:\s]*(\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	checkInRegex         = regexp.MustCompile(`(?i)\bin\b`)
)

// rawNameRegex captures everything on the first line up to the first digit
// or bracket.
var rawNameRegex = regexp.MustCompile(`^([^0-9\[\(]+)`)

// approvalCodeRegex picks up shorthand like "JSP Approved".
var approvalCodeRegex = regexp.MustCompile(`\b([A-Z]{2,5})\s+[Aa]pproved\b`)

// parseSection turns one person's section into a ParsedEntry. Returns nil
// for empty or signal-free sections; everything else degrades to an entry
// with unknown status or an unmatched name rather than failing.
func parseSection(section string, roster []employee.Employee, rules attendance.Rules) *attendance.ParsedEntry {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil
	}

	firstLine := section
	if idx := strings.IndexByte(section, '\n'); idx >= 0 {
		firstLine = section[:idx]
	}

	rawName := ""
	if m := rawNameRegex.FindStringSubmatch(firstLine); m != nil {
		rawName = strings.TrimSpace(strings.Trim(m[1], " -–:"))
	}
	// a name needs at least one letter; punctuation runs are noise
	if !strings.ContainsFunc(rawName, unicode.IsLetter) {
		rawName = ""
	}

	entry := attendance.ParsedEntry{
		RawName:   rawName,
		Status:    classifyStatus(section),
		Deduction: decimal.Zero,
	}

	// a section with no name, no recognizable status and no time token is
	// noise, not an attendance record
	if rawName == "" && entry.Status == attendance.StatusUnknown && clock.FirstToken(section) == "" {
		return nil
	}
	// a worked day earns the day rate; absences and unknowns do not
	switch entry.Status {
	case attendance.StatusCheckIn, attendance.StatusWorkFromHome, attendance.StatusETADelayed:
		entry.DayRateApplicable = true
	}

	if token := clock.FirstToken(section); token != "" {
		entry.CheckInTime = &token
	}

	resolveEntry(&entry, roster, rules)

	if m := etaRegex.FindStringSubmatch(section); m != nil {
		eta := strings.TrimSpace(m[1])
		entry.ETATime = &eta
	}
	if m := approvalCodeRegex.FindStringSubmatch(section); m != nil {
		entry.ApprovalCode = &m[1]
	}

	return &entry
}

// resolveEntry fills the roster-dependent fields: employee match with
// confidence, lateness and deduction. Also used to normalize entries coming
// back from the external-model fallback so they flow through the same rules.
func resolveEntry(entry *attendance.ParsedEntry, roster []employee.Employee, rules attendance.Rules) {
	var matched *employee.Employee
	names := make([]string, len(roster))
	for i, emp := range roster {
		names[i] = emp.FullName
	}
	if idx := namematch.Match(entry.RawName, names); idx >= 0 {
		matched = &roster[idx]
		entry.EmployeeID = &roster[idx].ID
		entry.Confidence = namematch.Score(entry.RawName, roster[idx].FullName)
	} else {
		entry.EmployeeID = nil
		entry.Confidence = 0
	}

	entry.IsLate, entry.MinutesLate = computeLateness(entry.CheckInTime, matched, entry.Status, rules)
	applyDeduction(entry, rules)
}

func classifyStatus(section string) attendance.EntryStatus {
	switch {
	case approvedAbsenceRegex.MatchString(section):
		return attendance.StatusApprovedAbsence
	case wfhRegex.MatchString(section):
		return attendance.StatusWorkFromHome
	case etaRegex.MatchString(section):
		return attendance.StatusETADelayed
	case checkInRegex.MatchString(section):
		return attendance.StatusCheckIn
	default:
		return attendance.StatusUnknown
	}
}

// applyDeduction fills the deduction fields from the classified status:
// a no-show forfeits the full notional day rate, excused statuses cost
// nothing, and anything else is charged per late minute (zero unless a
// per-minute penalty is configured).
func applyDeduction(entry *attendance.ParsedEntry, rules attendance.Rules) {
	switch entry.Status {
	case attendance.StatusNoShow:
		// full notional day rate, and the day itself earns nothing
		entry.Deduction = rules.DayRate
		entry.DayRateApplicable = false
		if rules.DayRate.IsPositive() {
			reason := "no show"
			entry.DeductionReason = &reason
		}
	case attendance.StatusApprovedAbsence, attendance.StatusWorkFromHome:
		entry.Deduction = decimal.Zero
	default:
		entry.Deduction = rules.PenaltyPerMinute.Mul(decimal.NewFromInt(int64(entry.MinutesLate)))
		if entry.Deduction.IsPositive() {
			reason := "late arrival"
			entry.DeductionReason = &reason
		}
	}
}
