package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/metrics"
)

func payrollRoster() []employee.Employee {
	return []employee.Employee{
		{ID: "emp-1", FullName: "John Smith", ChatHandle: "jsmith", HourlyRate: decimal.NewFromInt(25), Status: employee.StatusActive},
		{ID: "emp-2", FullName: "Jane Doe", ChatHandle: "jdoe", HourlyRate: decimal.NewFromInt(30), Status: employee.StatusActive},
		{ID: "emp-3", FullName: "Idle Ivan", ChatHandle: "iivan", HourlyRate: decimal.NewFromInt(20), Status: employee.StatusActive},
	}
}

func eventAt(handle, message, date string, hour, minute int) payroll.AttendanceEvent {
	ts := time.Date(2025, 7, 14, hour, minute, 0, 0, time.UTC)
	if date != "2025-07-14" {
		parsed, _ := time.Parse(time.DateOnly, date)
		ts = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), hour, minute, 0, 0, time.UTC)
	}
	return payroll.AttendanceEvent{
		ChatHandle: handle,
		Message:    message,
		Timestamp:  float64(ts.Unix()),
		Date:       date,
	}
}

func TestDeriveAttendanceLogs(t *testing.T) {
	rules := payroll.DefaultRules()
	events := []payroll.AttendanceEvent{
		eventAt("jsmith", "checked in", "2025-07-14", 9, 0),
		eventAt("jsmith", "checked out", "2025-07-14", 17, 0),
		eventAt("jdoe", "in for the day", "2025-07-14", 9, 10),
		eventAt("jdoe", "heading out", "2025-07-14", 19, 10),
		eventAt("iivan", "away today", "2025-07-14", 12, 0),
		eventAt("ghost", "checked in", "2025-07-14", 9, 0),
	}

	logs := DeriveAttendanceLogs(events, payrollRoster(), rules)
	require.Len(t, logs, 3)

	john := logs[0]
	assert.Equal(t, "emp-1", john.EmployeeID)
	assert.InDelta(t, 8.0, john.HoursWorked, 1e-9)
	assert.False(t, john.IsLate)
	assert.False(t, john.IsOffline)

	jane := logs[1]
	assert.Equal(t, "emp-2", jane.EmployeeID)
	assert.InDelta(t, 10.0, jane.HoursWorked, 1e-9)
	assert.True(t, jane.IsLate)
	assert.False(t, jane.IsOffline)

	ivan := logs[2]
	assert.Equal(t, "emp-3", ivan.EmployeeID)
	assert.True(t, ivan.IsOffline)
	assert.Zero(t, ivan.HoursWorked)
}

func TestDeriveAttendanceLogsGraceBoundary(t *testing.T) {
	rules := payroll.DefaultRules() // 9:00 start, 5 minute grace

	logs := DeriveAttendanceLogs([]payroll.AttendanceEvent{
		eventAt("jsmith", "checked in", "2025-07-14", 9, 5),
		eventAt("jdoe", "checked in", "2025-07-14", 9, 6),
	}, payrollRoster(), rules)
	require.Len(t, logs, 2)

	assert.False(t, logs[0].IsLate, "9:05 with 5 minute grace is on time")
	assert.True(t, logs[1].IsLate, "9:06 with 5 minute grace is late")
}

func TestDeriveAttendanceLogsOutBeatsInWithinOneMessage(t *testing.T) {
	logs := DeriveAttendanceLogs([]payroll.AttendanceEvent{
		eventAt("jsmith", "checked in", "2025-07-14", 9, 0),
		eventAt("jsmith", "checking out for the evening", "2025-07-14", 17, 30),
	}, payrollRoster(), payroll.DefaultRules())
	require.Len(t, logs, 1)

	require.NotNil(t, logs[0].CheckOut)
	assert.InDelta(t, 8.5, logs[0].HoursWorked, 1e-9)
}

func TestDeriveAttendanceLogsLastEventWins(t *testing.T) {
	logs := DeriveAttendanceLogs([]payroll.AttendanceEvent{
		eventAt("jsmith", "checked in", "2025-07-14", 9, 0),
		eventAt("jsmith", "back in after badge reset", "2025-07-14", 9, 30),
		eventAt("jsmith", "checked out", "2025-07-14", 17, 0),
	}, payrollRoster(), payroll.DefaultRules())
	require.Len(t, logs, 1)

	require.NotNil(t, logs[0].CheckIn)
	assert.Equal(t, 9, logs[0].CheckIn.Hour())
	assert.Equal(t, 30, logs[0].CheckIn.Minute())
	assert.InDelta(t, 7.5, logs[0].HoursWorked, 1e-9)
}

func TestSummarizePayrollOneRowPerEmployee(t *testing.T) {
	roster := payrollRoster()
	summaries := SummarizePayroll(nil, roster, payroll.DefaultRules())

	require.Len(t, summaries, len(roster))
	for i, s := range summaries {
		assert.Equal(t, roster[i].ID, s.EmployeeID)
		assert.Zero(t, s.TotalHours)
		assert.True(t, s.GrossPay.IsZero())
		assert.True(t, s.NetPay.IsZero())
	}
}

func TestSummarizePayrollWeekWithOvertime(t *testing.T) {
	rules := payroll.DefaultRules()
	roster := payrollRoster()

	var logs []payroll.AttendanceLog
	// John: five 8 hour days, one of them late
	for day := 14; day <= 18; day++ {
		logs = append(logs, payroll.AttendanceLog{
			EmployeeID: "emp-1", Date: time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
			HoursWorked: 8, IsLate: day == 15,
		})
	}
	// Jane: six 9 hour days, 54 hours total, plus an offline day
	for day := 14; day <= 19; day++ {
		logs = append(logs, payroll.AttendanceLog{
			EmployeeID: "emp-2", Date: time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
			HoursWorked: 9,
		})
	}
	logs = append(logs, payroll.AttendanceLog{EmployeeID: "emp-2", Date: "2025-07-20", IsOffline: true})

	summaries := SummarizePayroll(logs, roster, rules)
	require.Len(t, summaries, 3)

	john := summaries[0]
	assert.InDelta(t, 40.0, john.TotalHours, 1e-9)
	assert.InDelta(t, 40.0, john.RegularHours, 1e-9)
	assert.Zero(t, john.OvertimeHours)
	assert.Equal(t, 1, john.LateDays)
	// 40h * $25 = $1000 gross, minus one $10 late deduction
	assert.Equal(t, "1000.00", john.GrossPay.StringFixed(2))
	assert.Equal(t, "990.00", john.NetPay.StringFixed(2))

	jane := summaries[1]
	assert.InDelta(t, 54.0, jane.TotalHours, 1e-9)
	assert.InDelta(t, 40.0, jane.RegularHours, 1e-9)
	assert.InDelta(t, 14.0, jane.OvertimeHours, 1e-9)
	assert.Equal(t, 1, jane.OfflineDays)
	// 40h * $30 + 14h * $30 * 1.5 = $1830 gross, minus one $50 offline deduction
	assert.Equal(t, "1830.00", jane.GrossPay.StringFixed(2))
	assert.Equal(t, "1780.00", jane.NetPay.StringFixed(2))
}

func TestSummarizePayrollDailyOvertimeSplit(t *testing.T) {
	rules := payroll.DefaultRules()

	// a single 9 hour day splits into 8 regular and 1 overtime hour even
	// though the weekly total is nowhere near the five-day ceiling
	logs := []payroll.AttendanceLog{
		{EmployeeID: "emp-1", Date: "2025-07-14", HoursWorked: 8},
		{EmployeeID: "emp-2", Date: "2025-07-14", HoursWorked: 9, IsLate: true},
	}

	summaries := SummarizePayroll(logs, payrollRoster(), rules)

	john := summaries[0]
	assert.InDelta(t, 8.0, john.RegularHours, 1e-9)
	assert.Zero(t, john.OvertimeHours)
	assert.Equal(t, "200.00", john.GrossPay.StringFixed(2))
	assert.Equal(t, "200.00", john.NetPay.StringFixed(2))

	jane := summaries[1]
	assert.InDelta(t, 9.0, jane.TotalHours, 1e-9)
	assert.InDelta(t, 8.0, jane.RegularHours, 1e-9)
	assert.InDelta(t, 1.0, jane.OvertimeHours, 1e-9)
	// $30 * 8 + $30 * 1 * 1.5 = $285 gross, $275 after the late deduction
	assert.Equal(t, "285.00", jane.GrossPay.StringFixed(2))
	assert.Equal(t, "275.00", jane.NetPay.StringFixed(2))
}

func TestSummarizePayrollInvariants(t *testing.T) {
	rules := payroll.DefaultRules()
	logs := []payroll.AttendanceLog{
		{EmployeeID: "emp-1", Date: "2025-07-14", HoursWorked: 43.5},
		{EmployeeID: "emp-2", Date: "2025-07-14", HoursWorked: 2, IsLate: true},
		{EmployeeID: "emp-3", Date: "2025-07-14", IsOffline: true},
		{EmployeeID: "emp-3", Date: "2025-07-15", IsOffline: true},
	}

	summaries := SummarizePayroll(logs, payrollRoster(), rules)
	for _, s := range summaries {
		assert.InDelta(t, s.TotalHours, s.RegularHours+s.OvertimeHours, 1e-9)
		assert.False(t, s.NetPay.IsNegative(), "net pay went negative for %s", s.EmployeeName)
	}
}

func TestSummarizePayrollNetPayClampedAtZero(t *testing.T) {
	rules := payroll.DefaultRules()
	// two offline days cost $100 against zero gross
	logs := []payroll.AttendanceLog{
		{EmployeeID: "emp-3", Date: "2025-07-14", IsOffline: true},
		{EmployeeID: "emp-3", Date: "2025-07-15", IsOffline: true},
	}

	summaries := SummarizePayroll(logs, payrollRoster(), rules)
	ivan := summaries[2]

	assert.Equal(t, "100.00", ivan.OfflineDeductions.StringFixed(2))
	assert.True(t, ivan.NetPay.IsZero())
}

// ========== SERVICE TESTS ==========

type stubEmployeeService struct {
	roster []employee.Employee
}

func (s *stubEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (s *stubEmployeeService) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	for _, emp := range s.roster {
		if emp.ID == id {
			return employee.EmployeeResponse{ID: emp.ID, FullName: emp.FullName, ChatHandle: emp.ChatHandle}, nil
		}
	}
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}
func (s *stubEmployeeService) List(ctx context.Context, activeOnly bool) (employee.ListEmployeeResponse, error) {
	return employee.ListEmployeeResponse{}, nil
}
func (s *stubEmployeeService) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}
func (s *stubEmployeeService) Delete(ctx context.Context, id string) error { return nil }
func (s *stubEmployeeService) Roster(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	if !activeOnly {
		return s.roster, nil
	}
	var out []employee.Employee
	for _, emp := range s.roster {
		if emp.IsActive() {
			out = append(out, emp)
		}
	}
	return out, nil
}

type stubRunRepo struct {
	runs map[string]payroll.Run
}

func newStubRunRepo() *stubRunRepo {
	return &stubRunRepo{runs: make(map[string]payroll.Run)}
}

func (s *stubRunRepo) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	run.CreatedAt = time.Now()
	s.runs[run.ID] = run
	return run, nil
}
func (s *stubRunRepo) GetByID(ctx context.Context, id string) (payroll.Run, error) {
	run, ok := s.runs[id]
	if !ok {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}
func (s *stubRunRepo) List(ctx context.Context) ([]payroll.Run, int64, error) {
	var out []payroll.Run
	for _, run := range s.runs {
		out = append(out, run)
	}
	return out, int64(len(out)), nil
}

func TestSummarizeService(t *testing.T) {
	runRepo := newStubRunRepo()
	svc := NewPayrollService(&stubEmployeeService{roster: payrollRoster()}, runRepo, payroll.DefaultRules(), metrics.New())

	req := payroll.SummarizeRequest{
		Events: []payroll.EventRequest{
			{ChatHandle: "jsmith", Message: "checked in", Timestamp: float64(time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC).Unix()), Date: "2025-07-14"},
			{ChatHandle: "jsmith", Message: "checked out", Timestamp: float64(time.Date(2025, 7, 14, 17, 0, 0, 0, time.UTC).Unix()), Date: "2025-07-14"},
			{ChatHandle: "jdoe", Message: "checked in", Timestamp: float64(time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC).Unix()), Date: "2025-07-15"},
			{ChatHandle: "jdoe", Message: "checked out", Timestamp: float64(time.Date(2025, 7, 15, 19, 0, 0, 0, time.UTC).Unix()), Date: "2025-07-15"},
		},
	}

	resp, err := svc.Summarize(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2025-07-14", resp.PeriodFrom)
	assert.Equal(t, "2025-07-15", resp.PeriodTo)
	require.Len(t, resp.Summaries, 3)
	require.Len(t, resp.Logs, 2)

	// one appearance per roster employee even without events
	assert.Equal(t, "Idle Ivan", resp.Summaries[2].EmployeeName)
	assert.Equal(t, "0.00", resp.Summaries[2].NetPay)

	// $25 * 8h
	assert.Equal(t, "200.00", resp.Summaries[0].GrossPay)
	// 8 regular + 1 overtime hour: $30 * 8 + $30 * 1 * 1.5, minus the
	// $10 late deduction for the 10:00 check-in
	assert.Equal(t, "285.00", resp.Summaries[1].GrossPay)
	assert.Equal(t, "275.00", resp.Summaries[1].NetPay)
	assert.Equal(t, 1, resp.Summaries[1].LateDays)

	fetched, err := svc.GetRun(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, fetched.ID)

	list, err := svc.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
}

func TestSummarizeServiceValidation(t *testing.T) {
	svc := NewPayrollService(&stubEmployeeService{roster: payrollRoster()}, newStubRunRepo(), payroll.DefaultRules(), metrics.New())

	_, err := svc.Summarize(context.Background(), payroll.SummarizeRequest{})
	assert.ErrorIs(t, err, payroll.ErrNoEvents)

	_, err = svc.Summarize(context.Background(), payroll.SummarizeRequest{
		Events: []payroll.EventRequest{{ChatHandle: "", Message: "in", Timestamp: 1, Date: "2025-07-14"}},
	})
	assert.Error(t, err)

	_, err = svc.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestSummarizeServiceEmptyRoster(t *testing.T) {
	svc := NewPayrollService(&stubEmployeeService{}, newStubRunRepo(), payroll.DefaultRules(), metrics.New())

	_, err := svc.Summarize(context.Background(), payroll.SummarizeRequest{
		Events: []payroll.EventRequest{
			{ChatHandle: "jsmith", Message: "checked in", Timestamp: 1, Date: "2025-07-14"},
		},
	})
	assert.ErrorIs(t, err, employee.ErrEmptyRoster)
}

func TestEffectiveRulesOverrides(t *testing.T) {
	svc := &PayrollServiceImpl{rules: payroll.DefaultRules()}

	hours := 10.0
	mult := "2.0"
	grace := 15
	rules := svc.effectiveRules(payroll.SummarizeRequest{
		StandardWorkHours:  &hours,
		OvertimeMultiplier: &mult,
		GraceMinutes:       &grace,
	})

	assert.Equal(t, 10.0, rules.StandardWorkHours)
	assert.Equal(t, 15, rules.GraceMinutes)
	assert.True(t, rules.OvertimeMultiplier.Equal(decimal.NewFromInt(2)))
	// untouched fields keep their defaults
	assert.True(t, rules.LateDeduction.Equal(decimal.NewFromInt(10)))
}
