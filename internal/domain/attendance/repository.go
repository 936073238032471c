package attendance

import "context"

// ImportRepository persists parse runs. The parser core never calls it
// directly; the service layer does, around the pure parse.
type ImportRepository interface {
	// Create stores the run and its matched entry rows atomically.
	Create(ctx context.Context, imp Import) (Import, error)
	GetByID(ctx context.Context, id string) (Import, error)
	List(ctx context.Context) ([]Import, int64, error)

	// ListEntriesByEmployee returns the matched entry rows for one
	// employee across all imports, newest first.
	ListEntriesByEmployee(ctx context.Context, employeeID string) ([]EmployeeEntry, error)
}
