// Package namematch matches free-text name tokens against roster names.
package namematch

import "strings"

// maxEditDistance is the acceptance bound for a fuzzy pair.
const maxEditDistance = 2

// generational suffixes carry no matching signal
var suffixes = []string{"jr", "sr", "ii", "iii", "iv"}

// Match returns the index of the first name in names matching raw, or -1.
// Exact case-insensitive equality wins immediately; otherwise a pair is
// accepted when one cleaned name contains the other or their edit distance
// is at most maxEditDistance. Ties resolve to the first name in slice order.
func Match(raw string, names []string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return -1
	}

	for i, name := range names {
		if strings.EqualFold(raw, strings.TrimSpace(name)) {
			return i
		}
	}

	cleanRaw := clean(raw)
	if cleanRaw == "" {
		return -1
	}

	for i, name := range names {
		cleanName := clean(name)
		if cleanName == "" {
			continue
		}
		if strings.Contains(cleanRaw, cleanName) || strings.Contains(cleanName, cleanRaw) {
			return i
		}
		if levenshtein(cleanRaw, cleanName) <= maxEditDistance {
			return i
		}
	}

	return -1
}

// nearMatchScore caps pairs that only become equal after cleaning, such
// as a name with a generational suffix against one without.
const nearMatchScore = 0.99

// Score reports match quality in [0, 1]. Only exact case-insensitive
// equality reaches 1.0; otherwise the score degrades with edit distance
// relative to the longer cleaned name, capped below full confidence.
func Score(raw, name string) float64 {
	raw = strings.TrimSpace(raw)
	name = strings.TrimSpace(name)
	if raw == "" || name == "" {
		return 0
	}
	if strings.EqualFold(raw, name) {
		return 1.0
	}

	a := clean(raw)
	b := clean(name)
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}

	score := 1.0 - float64(levenshtein(a, b))/float64(longest)
	if score < 0 {
		return 0
	}
	if score > nearMatchScore {
		return nearMatchScore
	}
	return score
}

// clean lowercases, drops generational suffix tokens and collapses spacing.
func clean(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	kept := fields[:0]
	for _, f := range fields {
		f = strings.TrimSuffix(f, ".")
		isSuffix := false
		for _, suf := range suffixes {
			if f == suf {
				isSuffix = true
				break
			}
		}
		if !isSuffix {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// levenshtein computes classic edit distance with unit costs for
// insertion, deletion and substitution.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
