package clock

import (
	"testing"
)

func TestMinutesOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"9:05 AM", 9*60 + 5, true},
		{"[10:00 AM]", 10 * 60, true},
		{"12:00 AM", 0, true},
		{"12:30 PM", 12*60 + 30, true},
		{"1:15pm", 13*60 + 15, true},
		{"checked in at 9:41 AM today", 9*60 + 41, true},
		{"no time here", 0, false},
		{"25:00 AM", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := MinutesOfDay(c.input)
		if c.ok {
			if err != nil {
				t.Errorf("MinutesOfDay(%q) unexpected error: %v", c.input, err)
				continue
			}
			if got != c.want {
				t.Errorf("MinutesOfDay(%q) = %d, want %d", c.input, got, c.want)
			}
		} else if err == nil {
			t.Errorf("MinutesOfDay(%q) = %d, want error", c.input, got)
		}
	}
}

func TestFirstToken(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"John Smith [9:05 AM] IN", "9:05 AM"},
		{"in at 10:00am then 11:00am", "10:00 AM"},
		{"OUT - approved", ""},
	}
	for _, c := range cases {
		if got := FirstToken(c.input); got != c.want {
			t.Errorf("FirstToken(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
