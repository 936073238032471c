package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/database"
)

type runRepositoryImpl struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payroll.RunRepository {
	return &runRepositoryImpl{db: db}
}

// Create implements payroll.RunRepository.
// Rules and summaries are JSONB documents; a run is immutable once written.
func (r *runRepositoryImpl) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	rulesJSON, err := json.Marshal(run.Rules)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to marshal rules: %w", err)
	}
	summariesJSON, err := json.Marshal(run.Summaries)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to marshal summaries: %w", err)
	}

	query := `
		INSERT INTO payroll_runs (id, period_from, period_to, rules, summaries)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, period_from, period_to, rules, summaries, created_at
	`

	var (
		result         payroll.Run
		rulesBytes     []byte
		summariesBytes []byte
	)
	err = q.QueryRow(ctx, query, run.ID, run.PeriodFrom, run.PeriodTo, rulesJSON, summariesJSON).Scan(
		&result.ID, &result.PeriodFrom, &result.PeriodTo, &rulesBytes, &summariesBytes, &result.CreatedAt,
	)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	if err := unmarshalRun(&result, rulesBytes, summariesBytes); err != nil {
		return payroll.Run{}, err
	}

	return result, nil
}

// GetByID implements payroll.RunRepository.
func (r *runRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_from, period_to, rules, summaries, created_at
		FROM payroll_runs
		WHERE id = $1
	`

	var (
		result         payroll.Run
		rulesBytes     []byte
		summariesBytes []byte
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.PeriodFrom, &result.PeriodTo, &rulesBytes, &summariesBytes, &result.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return payroll.Run{}, payroll.ErrRunNotFound
	}

	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	if err := unmarshalRun(&result, rulesBytes, summariesBytes); err != nil {
		return payroll.Run{}, err
	}

	return result, nil
}

// List implements payroll.RunRepository.
func (r *runRepositoryImpl) List(ctx context.Context) ([]payroll.Run, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_from, period_to, rules, summaries, created_at
		FROM payroll_runs
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		var (
			run            payroll.Run
			rulesBytes     []byte
			summariesBytes []byte
		)
		err := rows.Scan(&run.ID, &run.PeriodFrom, &run.PeriodTo, &rulesBytes, &summariesBytes, &run.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		if err := unmarshalRun(&run, rulesBytes, summariesBytes); err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return runs, int64(len(runs)), nil
}

func unmarshalRun(run *payroll.Run, rulesBytes, summariesBytes []byte) error {
	if err := json.Unmarshal(rulesBytes, &run.Rules); err != nil {
		return fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	if err := json.Unmarshal(summariesBytes, &run.Summaries); err != nil {
		return fmt.Errorf("failed to unmarshal summaries: %w", err)
	}
	return nil
}
