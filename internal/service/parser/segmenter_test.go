package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		ok       bool
	}{
		{
			name:     "two digit year",
			text:     "Start Date 7/14/25\nJohn Smith [9:02 AM] IN",
			expected: "2025-07-14",
			ok:       true,
		},
		{
			name:     "four digit year",
			text:     "start date 12/1/2024",
			expected: "2024-12-01",
			ok:       true,
		},
		{
			name: "no header",
			text: "John Smith [9:02 AM] IN",
			ok:   false,
		},
		{
			name: "month out of range",
			text: "Start Date 13/14/25",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := extractDate(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, date)
			}
		})
	}
}

func TestSplitIntoSections(t *testing.T) {
	text := "Start Date 7/14/25\n" +
		"John Smith [9:02 AM] IN\n" +
		"Maria Garcia [9:15 AM]\n" +
		"WFH today\n" +
		"Dave Wilson OUT - Sick leave JSP Approved"

	sections := splitIntoSections(text)

	assert.Len(t, sections, 3)
	assert.Contains(t, sections[0], "John Smith")
	assert.Contains(t, sections[1], "Maria Garcia")
	assert.Contains(t, sections[1], "WFH today")
	assert.Contains(t, sections[2], "Dave Wilson")
}

func TestSplitIntoSectionsDropsHeaderAndBlankLines(t *testing.T) {
	sections := splitIntoSections("Start Date 7/14/25\n\n\n")
	assert.Empty(t, sections)
}

func TestSplitIntoSectionsContinuationLines(t *testing.T) {
	text := "Anna Lee [10:05 AM] IN\ndoctor note emailed\nback later today"

	sections := splitIntoSections(text)

	assert.Len(t, sections, 1)
	assert.Contains(t, sections[0], "doctor note emailed")
}
