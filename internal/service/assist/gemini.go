package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
)

const defaultModel = "gemini-2.0-flash"

// GeminiFallback asks Gemini to extract attendance entries when the
// deterministic parser finds nothing in a non-empty blob. Its output is
// advisory: the caller re-runs name matching, lateness and deductions over
// whatever comes back.
type GeminiFallback struct {
	client *genai.Client
	model  string
}

func NewGeminiFallback(apiKey, model string) (*GeminiFallback, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiFallback{
		client: client,
		model:  model,
	}, nil
}

// fallbackEntry is the JSON shape the model is asked to produce.
type fallbackEntry struct {
	Name        string `json:"name"`
	CheckInTime string `json:"check_in_time"`
	Status      string `json:"status"`
	ETATime     string `json:"eta_time"`
}

// ParseAttendance implements attendance.ModelFallback.
func (f *GeminiFallback) ParseAttendance(ctx context.Context, text string, roster []employee.Employee) ([]attendance.ParsedEntry, error) {
	names := make([]string, 0, len(roster))
	for _, emp := range roster {
		names = append(names, emp.FullName)
	}

	prompt := buildPrompt(text, names)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := f.client.Models.GenerateContent(ctx,
		f.model,
		contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var decoded []fallbackEntry
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}

	entries := make([]attendance.ParsedEntry, 0, len(decoded))
	for _, d := range decoded {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		entries = append(entries, toEntry(d))
	}

	return entries, nil
}

func buildPrompt(text string, names []string) string {
	var b strings.Builder
	b.WriteString("Extract attendance entries from the chat log below.\n")
	b.WriteString("Return a JSON array of objects with fields: name, check_in_time (like \"9:05 AM\" or empty), ")
	b.WriteString("status (one of check_in, approved_absence, work_from_home, eta_delayed, unknown), eta_time (or empty).\n")
	b.WriteString("Known employees: ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\nChat log:\n")
	b.WriteString(text)
	return b.String()
}

func toEntry(d fallbackEntry) attendance.ParsedEntry {
	entry := attendance.ParsedEntry{
		RawName:   strings.TrimSpace(d.Name),
		Status:    attendance.StatusUnknown,
		Deduction: decimal.Zero,
	}

	switch attendance.EntryStatus(d.Status) {
	case attendance.StatusCheckIn, attendance.StatusApprovedAbsence,
		attendance.StatusWorkFromHome, attendance.StatusETADelayed:
		entry.Status = attendance.EntryStatus(d.Status)
	}

	if t := strings.TrimSpace(d.CheckInTime); t != "" {
		entry.CheckInTime = &t
	}
	if t := strings.TrimSpace(d.ETATime); t != "" {
		entry.ETATime = &t
	}

	return entry
}
