// Package clock parses informal "H:MM AM/PM" tokens from chat text.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The leading boundary keeps a digit run like "25:00" from yielding "5:00".
var tokenRegex = regexp.MustCompile(`(?i)\b(1[0-2]|0?[1-9]):([0-5][0-9])\s*(AM|PM)`)

// MinutesOfDay parses a clock token into minutes since midnight. Brackets
// and surrounding noise are tolerated; the first token in s wins.
func MinutesOfDay(s string) (int, error) {
	m := tokenRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("no clock token in %q", s)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, err
	}

	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(m[3], "PM") {
		hour += 12
	}

	return hour*60 + minute, nil
}

// FirstToken extracts the first clock token from s in canonical
// "H:MM AM" form, or "" when s has none.
func FirstToken(s string) string {
	m := tokenRegex.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1] + ":" + m[2] + " " + strings.ToUpper(m[3])
}
