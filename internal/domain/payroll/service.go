package payroll

import "context"

// PayrollService derives daily logs from raw events and folds them into
// per-employee summaries.
type PayrollService interface {
	// Summarize runs the full structured pipeline and persists the run.
	Summarize(ctx context.Context, req SummarizeRequest) (RunResponse, error)

	// GetRun retrieves a persisted payroll run
	GetRun(ctx context.Context, id string) (RunResponse, error)

	// ListRuns retrieves persisted payroll runs, newest first
	ListRuns(ctx context.Context) (ListRunResponse, error)
}
