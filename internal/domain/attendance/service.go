package attendance

import (
	"context"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
)

// ParserService turns a raw attendance blob into a structured parse result.
type ParserService interface {
	// ParseText parses without persisting (dry run / preview).
	ParseText(ctx context.Context, req ParseTextRequest) (ParseResultResponse, error)

	// ImportText parses and persists the result as an Import.
	ImportText(ctx context.Context, req ParseTextRequest) (ImportResponse, error)

	// GetImport retrieves a persisted parse run
	GetImport(ctx context.Context, id string) (ImportResponse, error)

	// ListImports retrieves persisted parse runs, newest first
	ListImports(ctx context.Context) (ListImportResponse, error)

	// EmployeeHistory retrieves one employee's matched entries across
	// all imports, newest first
	EmployeeHistory(ctx context.Context, employeeID string) (EmployeeHistoryResponse, error)
}

// ModelFallback is an optional external collaborator that can attempt a parse
// when the deterministic parser extracts nothing from a non-empty blob. The
// deterministic parser is always the correctness baseline; fallback output is
// re-matched and re-summarized by the same core code.
type ModelFallback interface {
	ParseAttendance(ctx context.Context, text string, roster []employee.Employee) ([]ParsedEntry, error)
}
