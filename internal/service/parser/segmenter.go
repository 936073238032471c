package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// headerDateRegex finds the report header, e.g. "Start Date 7/14/25" or
// "start date 07/14/2025". Two-digit years are assumed in the 2000s.
var headerDateRegex = regexp.MustCompile(`(?i)start\s+date\s+(\d{1,2})/(\d{1,2})/(\d{2,4})`)

// sectionStartRegex marks a line that looks like the beginning of a new
// person's record: a run of name-like characters followed by a time token
// (optionally bracketed) or one of the literal attendance markers.
var sectionStartRegex = regexp.MustCompile(`(?i)^\s*[a-z][a-z .,'-]*\s*(\[?\d{1,2}:\d{2}|IN\b|OUT\b|WFH\b|ETA\b)`)

// extractDate pulls the reporting date out of the blob header, normalized
// to "2006-01-02". ok is false when the header carries no date.
func extractDate(text string) (string, bool) {
	m := headerDateRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	month := atoiSafe(m[1])
	day := atoiSafe(m[2])
	year := atoiSafe(m[3])
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// splitIntoSections cuts the blob into per-person sections. The header date
// line is dropped; every line matching sectionStartRegex opens a new section
// and subsequent non-matching lines belong to it. This is a best-effort
// heuristic, not a grammar: malformed input shifts a boundary or garbles a
// name, which surfaces downstream as an unmatched name or unknown status.
func splitIntoSections(text string) []string {
	var sections []string
	var current []string

	flush := func() {
		joined := strings.TrimSpace(strings.Join(current, "\n"))
		if joined != "" {
			sections = append(sections, joined)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if headerDateRegex.MatchString(line) {
			continue
		}
		if sectionStartRegex.MatchString(line) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return sections
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
