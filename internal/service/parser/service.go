package parser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/metrics"
)

type ParserServiceImpl struct {
	employeeService employee.EmployeeService
	importRepo      attendance.ImportRepository
	fallback        attendance.ModelFallback
	rules           attendance.Rules
	metrics         *metrics.Metrics
}

// NewParserService wires the free-text pipeline. fallback may be nil, in
// which case the deterministic parser is all there is.
func NewParserService(
	employeeService employee.EmployeeService,
	importRepo attendance.ImportRepository,
	fallback attendance.ModelFallback,
	rules attendance.Rules,
	m *metrics.Metrics,
) attendance.ParserService {
	return &ParserServiceImpl{
		employeeService: employeeService,
		importRepo:      importRepo,
		fallback:        fallback,
		rules:           rules,
		metrics:         m,
	}
}

// Parse is the pure free-text pipeline: blob in, structured result out.
// It never touches storage or the network and holds no state between calls;
// callers own the roster and rules snapshots.
func Parse(text string, roster []employee.Employee, rules attendance.Rules) (attendance.ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return attendance.ParseResult{}, attendance.ErrEmptyText
	}
	if len(roster) == 0 {
		return attendance.ParseResult{}, employee.ErrEmptyRoster
	}

	date, _ := extractDate(text)

	var entries []attendance.ParsedEntry
	for _, section := range splitIntoSections(text) {
		if entry := parseSection(section, roster, rules); entry != nil {
			entries = append(entries, *entry)
		}
	}

	return assembleResult(date, entries, roster), nil
}

// assembleResult derives the aggregate views from a list of entries.
func assembleResult(date string, entries []attendance.ParsedEntry, roster []employee.Employee) attendance.ParseResult {
	var unmatched []string
	for _, e := range entries {
		if e.EmployeeID == nil {
			unmatched = append(unmatched, e.RawName)
		}
	}

	noShows := identifyNoShows(entries, roster)

	return attendance.ParseResult{
		Date:            date,
		Entries:         entries,
		UnmatchedNames:  unmatched,
		ParseErrors:     validateEntries(entries),
		NoShowEmployees: noShows,
		Summary:         summarize(entries, noShows),
	}
}

// ParseText implements attendance.ParserService.
func (s *ParserServiceImpl) ParseText(ctx context.Context, req attendance.ParseTextRequest) (attendance.ParseResultResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ParseResultResponse{}, err
	}

	result, usedFallback, roster, err := s.parse(ctx, req.Text)
	if err != nil {
		return attendance.ParseResultResponse{}, err
	}

	resp := resultToResponse(result, rosterNames(roster))
	resp.UsedFallback = usedFallback
	return resp, nil
}

// ImportText implements attendance.ParserService.
func (s *ParserServiceImpl) ImportText(ctx context.Context, req attendance.ParseTextRequest) (attendance.ImportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResponse{}, err
	}

	result, usedFallback, roster, err := s.parse(ctx, req.Text)
	if err != nil {
		return attendance.ImportResponse{}, err
	}

	imp := attendance.Import{
		ID:      uuid.NewString(),
		Date:    result.Date,
		RawText: req.Text,
		Result:  result,
	}

	created, err := s.importRepo.Create(ctx, imp)
	if err != nil {
		return attendance.ImportResponse{}, fmt.Errorf("failed to create attendance import: %w", err)
	}
	s.metrics.ImportsCreated.Inc()

	resp := importToResponse(created, rosterNames(roster))
	resp.Result.UsedFallback = usedFallback
	return resp, nil
}

// parse loads the roster snapshot, runs the deterministic parser and, when
// it extracts nothing from a non-empty blob, consults the optional fallback.
// Fallback entries are re-resolved against the roster by the same rules.
func (s *ParserServiceImpl) parse(ctx context.Context, text string) (attendance.ParseResult, bool, []employee.Employee, error) {
	roster, err := s.employeeService.Roster(ctx, false)
	if err != nil {
		return attendance.ParseResult{}, false, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	result, err := Parse(text, roster, s.rules)
	if err != nil {
		return attendance.ParseResult{}, false, nil, err
	}
	s.metrics.ParseRuns.Inc()

	usedFallback := false
	if len(result.Entries) == 0 && s.fallback != nil {
		s.metrics.FallbackCalls.Inc()
		entries, ferr := s.fallback.ParseAttendance(ctx, text, roster)
		switch {
		case ferr != nil:
			// advisory, the empty deterministic result still stands
			result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("%s: %v", attendance.ErrFallbackFailure, ferr))
		case len(entries) > 0:
			for i := range entries {
				resolveEntry(&entries[i], roster, s.rules)
			}
			result = assembleResult(result.Date, entries, roster)
			usedFallback = true
		}
	}

	if result.Date == "" {
		result.Date = time.Now().Format(time.DateOnly)
	}

	s.metrics.ParseEntries.Add(float64(len(result.Entries)))
	s.metrics.ParseErrors.Add(float64(len(result.ParseErrors)))
	s.metrics.UnmatchedNames.Add(float64(len(result.UnmatchedNames)))

	return result, usedFallback, roster, nil
}

// GetImport implements attendance.ParserService.
func (s *ParserServiceImpl) GetImport(ctx context.Context, id string) (attendance.ImportResponse, error) {
	imp, err := s.importRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.ImportResponse{}, err
	}

	roster, err := s.employeeService.Roster(ctx, false)
	if err != nil {
		return attendance.ImportResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	return importToResponse(imp, rosterNames(roster)), nil
}

// ListImports implements attendance.ParserService.
func (s *ParserServiceImpl) ListImports(ctx context.Context) (attendance.ListImportResponse, error) {
	imports, total, err := s.importRepo.List(ctx)
	if err != nil {
		return attendance.ListImportResponse{}, fmt.Errorf("failed to list attendance imports: %w", err)
	}

	roster, err := s.employeeService.Roster(ctx, false)
	if err != nil {
		return attendance.ListImportResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}
	names := rosterNames(roster)

	responses := make([]attendance.ImportResponse, 0, len(imports))
	for _, imp := range imports {
		responses = append(responses, importToResponse(imp, names))
	}

	return attendance.ListImportResponse{
		TotalCount: total,
		Imports:    responses,
	}, nil
}

// EmployeeHistory implements attendance.ParserService.
func (s *ParserServiceImpl) EmployeeHistory(ctx context.Context, employeeID string) (attendance.EmployeeHistoryResponse, error) {
	emp, err := s.employeeService.Get(ctx, employeeID)
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, err
	}

	entries, err := s.importRepo.ListEntriesByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.EmployeeHistoryResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	records := make([]attendance.HistoryRecordResponse, 0, len(entries))
	for _, e := range entries {
		records = append(records, attendance.HistoryRecordResponse{
			ImportID:    e.ImportID,
			Date:        e.Date,
			Status:      string(e.Entry.Status),
			CheckInTime: e.Entry.CheckInTime,
			IsLate:      e.Entry.IsLate,
			MinutesLate: e.Entry.MinutesLate,
			Deduction:   e.Entry.Deduction.StringFixed(2),
		})
	}

	return attendance.EmployeeHistoryResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Records:      records,
	}, nil
}

// ========== HELPERS ==========

func rosterNames(roster []employee.Employee) map[string]string {
	names := make(map[string]string, len(roster))
	for _, emp := range roster {
		names[emp.ID] = emp.FullName
	}
	return names
}

func resultToResponse(r attendance.ParseResult, names map[string]string) attendance.ParseResultResponse {
	entries := make([]attendance.ParsedEntryResponse, 0, len(r.Entries))
	for _, e := range r.Entries {
		er := attendance.ParsedEntryResponse{
			RawName:           e.RawName,
			EmployeeID:        e.EmployeeID,
			CheckInTime:       e.CheckInTime,
			Status:            string(e.Status),
			IsLate:            e.IsLate,
			MinutesLate:       e.MinutesLate,
			Confidence:        e.Confidence,
			DayRateApplicable: e.DayRateApplicable,
			Deduction:         e.Deduction.StringFixed(2),
			DeductionReason:   e.DeductionReason,
			ETATime:           e.ETATime,
			ApprovalCode:      e.ApprovalCode,
		}
		if e.EmployeeID != nil {
			if name, ok := names[*e.EmployeeID]; ok {
				er.EmployeeName = &name
			}
		}
		entries = append(entries, er)
	}

	return attendance.ParseResultResponse{
		Date:            r.Date,
		Entries:         entries,
		UnmatchedNames:  emptyIfNil(r.UnmatchedNames),
		ParseErrors:     emptyIfNil(r.ParseErrors),
		NoShowEmployees: emptyIfNil(r.NoShowEmployees),
		Summary: attendance.ParseSummaryResponse{
			TotalEntries:     r.Summary.TotalEntries,
			CheckIns:         r.Summary.CheckIns,
			ApprovedAbsences: r.Summary.ApprovedAbsences,
			WorkFromHome:     r.Summary.WorkFromHome,
			LateArrivals:     r.Summary.LateArrivals,
			NoShows:          r.Summary.NoShows,
			Unmatched:        r.Summary.Unmatched,
			TotalDeduction:   r.Summary.TotalDeduction.StringFixed(2),
		},
	}
}

func importToResponse(imp attendance.Import, names map[string]string) attendance.ImportResponse {
	return attendance.ImportResponse{
		ID:        imp.ID,
		Date:      imp.Date,
		Result:    resultToResponse(imp.Result, names),
		CreatedAt: imp.CreatedAt.Format(time.RFC3339),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
