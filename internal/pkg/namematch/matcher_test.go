package namematch

import (
	"testing"
)

func TestMatch_ExactCaseInsensitive(t *testing.T) {
	names := []string{"John Smith", "Jane Doe"}
	cases := []struct {
		raw  string
		want int
	}{
		{"John Smith", 0},
		{"john smith", 0},
		{"JANE DOE", 1},
		{"  Jane Doe  ", 1},
	}
	for _, c := range cases {
		if got := Match(c.raw, names); got != c.want {
			t.Errorf("Match(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestMatch_Fuzzy(t *testing.T) {
	names := []string{"John Smith", "Jane Doe", "Roberto Delacruz"}
	cases := []struct {
		raw  string
		want int
	}{
		{"Jon Smith", 0},     // one deletion
		{"John Smyth", 0},    // one substitution
		{"Jane Does", 1},     // one insertion
		{"John Smith Jr", 0}, // suffix stripped
		{"Roberto", 2},       // substring of cleaned name
		{"Jhn Smth", 0},      // two deletions, at the bound
	}
	for _, c := range cases {
		if got := Match(c.raw, names); got != c.want {
			t.Errorf("Match(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestMatch_NoMatch(t *testing.T) {
	names := []string{"John Smith", "Jane Doe"}
	for _, raw := range []string{"", "   ", "Zzyzx Qwerty", "Totally Different"} {
		if got := Match(raw, names); got != -1 {
			t.Errorf("Match(%q) = %d, want -1", raw, got)
		}
	}
}

func TestMatch_RosterOrderTieBreak(t *testing.T) {
	// Two roster names both within edit distance of the raw token. The
	// first roster entry wins; pinned so a tie-break change is deliberate.
	names := []string{"Jon Smith", "Joan Smith"}
	if got := Match("John Smith", names); got != 0 {
		t.Errorf("Match tie-break = %d, want 0 (first in roster order)", got)
	}
}

func TestScore(t *testing.T) {
	if got := Score("john smith", "John Smith"); got != 1.0 {
		t.Errorf("exact score = %f, want 1.0", got)
	}
	if got := Score("", "John Smith"); got != 0 {
		t.Errorf("empty raw score = %f, want 0", got)
	}

	// "jon smith" vs "john smith": distance 1, longest cleaned length 10
	got := Score("Jon Smith", "John Smith")
	want := 1.0 - 1.0/10.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("fuzzy score = %f, want %f", got, want)
	}

	// Far-off pairs floor at zero
	if got := Score("ab", "qrstuvwxyz"); got < 0 {
		t.Errorf("score went negative: %f", got)
	}
}

func TestScore_NearMatchCappedBelowExact(t *testing.T) {
	// Cleaning makes these equal, but only literal equality rates 1.0
	if got := Score("John Smith Jr", "John Smith"); got != nearMatchScore {
		t.Errorf("suffix score = %f, want %f", got, nearMatchScore)
	}
	if got := Score("John Smith Jr.", "John Smith"); got >= 1.0 {
		t.Errorf("dotted suffix score = %f, want below 1.0", got)
	}
	// The pair still matches, it just carries reduced confidence
	if got := Match("John Smith Jr", []string{"John Smith"}); got != 0 {
		t.Errorf("Match suffix pair = %d, want 0", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
