package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/database"
)

type importRepositoryImpl struct {
	db *database.DB
}

func NewImportRepository(db *database.DB) attendance.ImportRepository {
	return &importRepositoryImpl{db: db}
}

// Create implements attendance.ImportRepository.
// The whole parse result is stored as one JSONB document, and matched
// entries are additionally written as rows so per-employee history can be
// queried without unpacking every run. Both writes happen in one
// transaction.
func (r *importRepositoryImpl) Create(ctx context.Context, imp attendance.Import) (attendance.Import, error) {
	resultJSON, err := json.Marshal(imp.Result)
	if err != nil {
		return attendance.Import{}, fmt.Errorf("failed to marshal parse result: %w", err)
	}

	var result attendance.Import
	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO attendance_imports (id, import_date, raw_text, result)
			VALUES ($1, $2, $3, $4)
			RETURNING id, import_date, raw_text, result, created_at
		`

		var resultBytes []byte
		err := q.QueryRow(txCtx, query, imp.ID, imp.Date, imp.RawText, resultJSON).Scan(
			&result.ID, &result.Date, &result.RawText, &resultBytes, &result.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create import: %w", err)
		}
		if err := json.Unmarshal(resultBytes, &result.Result); err != nil {
			return fmt.Errorf("failed to unmarshal parse result: %w", err)
		}

		entryQuery := `
			INSERT INTO attendance_import_entries
				(import_id, employee_id, entry_date, status, check_in_time, is_late, minutes_late, deduction)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for _, e := range imp.Result.Entries {
			if e.EmployeeID == nil {
				continue
			}
			_, err := q.Exec(txCtx, entryQuery,
				imp.ID, *e.EmployeeID, imp.Date, string(e.Status),
				e.CheckInTime, e.IsLate, e.MinutesLate, e.Deduction,
			)
			if err != nil {
				return fmt.Errorf("failed to create import entry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return attendance.Import{}, err
	}

	return result, nil
}

// GetByID implements attendance.ImportRepository.
func (r *importRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Import, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, import_date, raw_text, result, created_at
		FROM attendance_imports
		WHERE id = $1
	`

	var (
		result      attendance.Import
		resultBytes []byte
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.Date, &result.RawText, &resultBytes, &result.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return attendance.Import{}, attendance.ErrImportNotFound
	}

	if err != nil {
		return attendance.Import{}, fmt.Errorf("failed to get import: %w", err)
	}

	if err := json.Unmarshal(resultBytes, &result.Result); err != nil {
		return attendance.Import{}, fmt.Errorf("failed to unmarshal parse result: %w", err)
	}

	return result, nil
}

// List implements attendance.ImportRepository.
func (r *importRepositoryImpl) List(ctx context.Context) ([]attendance.Import, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, import_date, raw_text, result, created_at
		FROM attendance_imports
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var imports []attendance.Import
	for rows.Next() {
		var (
			imp         attendance.Import
			resultBytes []byte
		)
		err := rows.Scan(&imp.ID, &imp.Date, &imp.RawText, &resultBytes, &imp.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan import: %w", err)
		}
		if err := json.Unmarshal(resultBytes, &imp.Result); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal parse result: %w", err)
		}
		imports = append(imports, imp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return imports, int64(len(imports)), nil
}

// ListEntriesByEmployee implements attendance.ImportRepository.
func (r *importRepositoryImpl) ListEntriesByEmployee(ctx context.Context, employeeID string) ([]attendance.EmployeeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT import_id, employee_id, entry_date, status, check_in_time, is_late, minutes_late, deduction
		FROM attendance_import_entries
		WHERE employee_id = $1
		ORDER BY entry_date DESC, import_id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list import entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.EmployeeEntry
	for rows.Next() {
		var (
			rec        attendance.EmployeeEntry
			employeeID string
			status     string
		)
		err := rows.Scan(
			&rec.ImportID, &employeeID, &rec.Date, &status,
			&rec.Entry.CheckInTime, &rec.Entry.IsLate, &rec.Entry.MinutesLate, &rec.Entry.Deduction,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import entry: %w", err)
		}
		rec.Entry.EmployeeID = &employeeID
		rec.Entry.Status = attendance.EntryStatus(status)
		entries = append(entries, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
