package payroll

import "context"

// RunRepository persists payroll runs.
type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id string) (Run, error)
	List(ctx context.Context) ([]Run, int64, error)
}
