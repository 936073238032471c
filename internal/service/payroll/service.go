package payroll

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/metrics"
)

type PayrollServiceImpl struct {
	employeeService employee.EmployeeService
	runRepo         payroll.RunRepository
	rules           payroll.Rules
	metrics         *metrics.Metrics
}

func NewPayrollService(
	employeeService employee.EmployeeService,
	runRepo payroll.RunRepository,
	rules payroll.Rules,
	m *metrics.Metrics,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeService: employeeService,
		runRepo:         runRepo,
		rules:           rules,
		metrics:         m,
	}
}

// DeriveAttendanceLogs groups raw events by (employee, date) and reduces
// them to one daily log each. A message containing the "out" marker sets the
// check-out, otherwise an "in" marker sets the check-in; repeated markers
// for the same key overwrite, so the last event seen wins. A log is offline
// only when both endpoints are absent; a single-sided day is just zero
// hours. Lateness is judged against the fixed 9:00 standard start plus the
// rules' grace, in the employee's timezone override or UTC.
func DeriveAttendanceLogs(events []payroll.AttendanceEvent, roster []employee.Employee, rules payroll.Rules) []payroll.AttendanceLog {
	byHandle := make(map[string]*employee.Employee, len(roster))
	for i := range roster {
		byHandle[roster[i].ChatHandle] = &roster[i]
	}

	type key struct {
		employeeID string
		date       string
	}
	logs := make(map[key]*payroll.AttendanceLog)
	var order []key

	for _, ev := range events {
		emp, ok := byHandle[ev.ChatHandle]
		if !ok {
			continue
		}

		k := key{employeeID: emp.ID, date: ev.Date}
		log, ok := logs[k]
		if !ok {
			log = &payroll.AttendanceLog{EmployeeID: emp.ID, Date: ev.Date}
			logs[k] = log
			order = append(order, k)
		}

		ts := eventInstant(ev, emp)
		msg := strings.ToLower(ev.Message)
		switch {
		case strings.Contains(msg, "out"):
			log.CheckOut = &ts
		case strings.Contains(msg, "in"):
			log.CheckIn = &ts
		}
	}

	result := make([]payroll.AttendanceLog, 0, len(order))
	for _, k := range order {
		log := logs[k]
		log.IsOffline = log.CheckIn == nil && log.CheckOut == nil

		if log.CheckIn != nil && log.CheckOut != nil {
			hours := log.CheckOut.Sub(*log.CheckIn).Hours()
			if hours > 0 {
				log.HoursWorked = hours
			}
		}

		if log.CheckIn != nil {
			mins := log.CheckIn.Hour()*60 + log.CheckIn.Minute()
			log.IsLate = mins > payroll.StandardStartHour*60+rules.GraceMinutes
		}

		result = append(result, *log)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].EmployeeID != result[j].EmployeeID {
			return result[i].EmployeeID < result[j].EmployeeID
		}
		return result[i].Date < result[j].Date
	})

	return result
}

// eventInstant converts the epoch timestamp to wall-clock time in the
// employee's timezone override, defaulting to UTC.
func eventInstant(ev payroll.AttendanceEvent, emp *employee.Employee) time.Time {
	sec := int64(ev.Timestamp)
	nsec := int64((ev.Timestamp - float64(sec)) * 1e9)
	ts := time.Unix(sec, nsec).UTC()

	if emp.Timezone != nil {
		if loc, err := time.LoadLocation(*emp.Timezone); err == nil {
			ts = ts.In(loc)
		}
	}
	return ts
}

// SummarizePayroll folds daily logs into one summary per roster employee.
// Hours beyond the standard day count as overtime day by day, and regular
// hours are additionally capped at a five-day week with the excess rolled
// into overtime. Employees with no logs still get a zeroed row; net pay
// never goes negative.
func SummarizePayroll(logs []payroll.AttendanceLog, roster []employee.Employee, rules payroll.Rules) []payroll.Summary {
	byEmployee := make(map[string]*payroll.Summary, len(roster))
	summaries := make([]payroll.Summary, len(roster))
	for i, emp := range roster {
		summaries[i] = payroll.Summary{
			EmployeeID:        emp.ID,
			EmployeeName:      emp.FullName,
			HourlyRate:        emp.HourlyRate,
			LateDeductions:    decimal.Zero,
			OfflineDeductions: decimal.Zero,
			GrossPay:          decimal.Zero,
			NetPay:            decimal.Zero,
		}
		byEmployee[emp.ID] = &summaries[i]
	}

	for _, log := range logs {
		s, ok := byEmployee[log.EmployeeID]
		if !ok {
			continue
		}
		s.TotalHours += log.HoursWorked
		dayRegular := log.HoursWorked
		if dayRegular > rules.StandardWorkHours {
			dayRegular = rules.StandardWorkHours
		}
		s.RegularHours += dayRegular
		s.OvertimeHours += log.HoursWorked - dayRegular
		if log.IsLate {
			s.LateDays++
			s.LateDeductions = s.LateDeductions.Add(rules.LateDeduction)
		}
		if log.IsOffline {
			s.OfflineDays++
			s.OfflineDeductions = s.OfflineDeductions.Add(rules.OfflineDeduction)
		}
	}

	weeklyCap := rules.StandardWorkHours * 5
	for i := range summaries {
		s := &summaries[i]

		if s.RegularHours > weeklyCap {
			s.OvertimeHours += s.RegularHours - weeklyCap
			s.RegularHours = weeklyCap
		}

		regularPay := decimal.NewFromFloat(s.RegularHours).Mul(s.HourlyRate)
		overtimePay := decimal.NewFromFloat(s.OvertimeHours).Mul(s.HourlyRate).Mul(rules.OvertimeMultiplier)
		s.GrossPay = regularPay.Add(overtimePay)

		s.NetPay = s.GrossPay.Sub(s.LateDeductions).Sub(s.OfflineDeductions)
		if s.NetPay.IsNegative() {
			s.NetPay = decimal.Zero
		}
	}

	return summaries
}

// Summarize implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summarize(ctx context.Context, req payroll.SummarizeRequest) (payroll.RunResponse, error) {
	if len(req.Events) == 0 {
		return payroll.RunResponse{}, payroll.ErrNoEvents
	}
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	roster, err := s.employeeService.Roster(ctx, true)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(roster) == 0 {
		return payroll.RunResponse{}, employee.ErrEmptyRoster
	}

	rules := s.effectiveRules(req)

	events := make([]payroll.AttendanceEvent, 0, len(req.Events))
	periodFrom, periodTo := "", ""
	for _, ev := range req.Events {
		events = append(events, payroll.AttendanceEvent{
			ChatHandle: ev.ChatHandle,
			Message:    ev.Message,
			Timestamp:  ev.Timestamp,
			Date:       ev.Date,
		})
		if periodFrom == "" || ev.Date < periodFrom {
			periodFrom = ev.Date
		}
		if ev.Date > periodTo {
			periodTo = ev.Date
		}
	}

	logs := DeriveAttendanceLogs(events, roster, rules)
	summaries := SummarizePayroll(logs, roster, rules)
	s.metrics.PayrollRuns.Inc()

	run := payroll.Run{
		ID:         uuid.NewString(),
		PeriodFrom: periodFrom,
		PeriodTo:   periodTo,
		Rules:      rules,
		Summaries:  summaries,
	}

	created, err := s.runRepo.Create(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	resp := runToResponse(created)
	resp.Logs = logsToResponses(logs)
	return resp, nil
}

// GetRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return runToResponse(run), nil
}

// ListRuns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRuns(ctx context.Context) (payroll.ListRunResponse, error) {
	runs, total, err := s.runRepo.List(ctx)
	if err != nil {
		return payroll.ListRunResponse{}, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, runToResponse(run))
	}

	return payroll.ListRunResponse{
		TotalCount: total,
		Runs:       responses,
	}, nil
}

// effectiveRules applies per-request overrides onto the configured rules.
func (s *PayrollServiceImpl) effectiveRules(req payroll.SummarizeRequest) payroll.Rules {
	rules := s.rules

	if req.StandardWorkHours != nil {
		rules.StandardWorkHours = *req.StandardWorkHours
	}
	if req.GraceMinutes != nil {
		rules.GraceMinutes = *req.GraceMinutes
	}
	if req.OvertimeMultiplier != nil {
		if d, err := decimal.NewFromString(*req.OvertimeMultiplier); err == nil {
			rules.OvertimeMultiplier = d
		}
	}
	if req.LateDeduction != nil {
		if d, err := decimal.NewFromString(*req.LateDeduction); err == nil {
			rules.LateDeduction = d
		}
	}
	if req.OfflineDeduction != nil {
		if d, err := decimal.NewFromString(*req.OfflineDeduction); err == nil {
			rules.OfflineDeduction = d
		}
	}

	return rules
}

// ========== HELPERS ==========

func runToResponse(run payroll.Run) payroll.RunResponse {
	summaries := make([]payroll.SummaryResponse, 0, len(run.Summaries))
	for _, s := range run.Summaries {
		summaries = append(summaries, summaryToResponse(s))
	}

	return payroll.RunResponse{
		ID:         run.ID,
		PeriodFrom: run.PeriodFrom,
		PeriodTo:   run.PeriodTo,
		Summaries:  summaries,
		CreatedAt:  run.CreatedAt.Format(time.RFC3339),
	}
}

func summaryToResponse(s payroll.Summary) payroll.SummaryResponse {
	return payroll.SummaryResponse{
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		HourlyRate:        s.HourlyRate.StringFixed(2),
		TotalHours:        s.TotalHours,
		RegularHours:      s.RegularHours,
		OvertimeHours:     s.OvertimeHours,
		LateDays:          s.LateDays,
		OfflineDays:       s.OfflineDays,
		LateDeductions:    s.LateDeductions.StringFixed(2),
		OfflineDeductions: s.OfflineDeductions.StringFixed(2),
		GrossPay:          s.GrossPay.StringFixed(2),
		NetPay:            s.NetPay.StringFixed(2),
	}
}

func logsToResponses(logs []payroll.AttendanceLog) []payroll.AttendanceLogResponse {
	responses := make([]payroll.AttendanceLogResponse, 0, len(logs))
	for _, log := range logs {
		lr := payroll.AttendanceLogResponse{
			EmployeeID:  log.EmployeeID,
			Date:        log.Date,
			IsLate:      log.IsLate,
			IsOffline:   log.IsOffline,
			HoursWorked: log.HoursWorked,
		}
		if log.CheckIn != nil {
			v := log.CheckIn.Format(time.RFC3339)
			lr.CheckIn = &v
		}
		if log.CheckOut != nil {
			v := log.CheckOut.Format(time.RFC3339)
			lr.CheckOut = &v
		}
		responses = append(responses, lr)
	}
	return responses
}
