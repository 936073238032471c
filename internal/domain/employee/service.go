package employee

import "context"

// EmployeeService defines business logic for roster management
type EmployeeService interface {
	// Create registers a new roster employee
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Get retrieves a single employee by ID
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// List retrieves roster employees, optionally active only
	List(ctx context.Context, activeOnly bool) (ListEmployeeResponse, error)

	// Update patches an employee record
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete soft deletes an employee
	Delete(ctx context.Context, id string) error

	// Roster returns the raw employee list used as the read-only roster
	// snapshot for parsing and payroll calculations.
	Roster(ctx context.Context, activeOnly bool) ([]Employee, error)
}
