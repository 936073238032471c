package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, chat_handle, hourly_rate, status,
	start_time, timezone, grace_minutes,
	created_at, updated_at, deleted_at
`

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, full_name, chat_handle, hourly_rate, status, start_time, timezone, grace_minutes)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	var result employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.FullName, newEmployee.ChatHandle, newEmployee.HourlyRate,
		newEmployee.Status, newEmployee.StartTime, newEmployee.Timezone, newEmployee.GraceMinutes,
	).Scan(
		&result.ID, &result.FullName, &result.ChatHandle, &result.HourlyRate, &result.Status,
		&result.StartTime, &result.Timezone, &result.GraceMinutes,
		&result.CreatedAt, &result.UpdatedAt, &result.DeletedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_chat_handle") {
			return employee.Employee{}, employee.ErrChatHandleExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return result, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.FullName, &result.ChatHandle, &result.HourlyRate, &result.Status,
		&result.StartTime, &result.Timezone, &result.GraceMinutes,
		&result.CreatedAt, &result.UpdatedAt, &result.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return result, nil
}

// List implements employee.EmployeeRepository.
// Rows come back in insertion order (uuidv7 ids are time ordered), which is
// the roster order the parser's tie-break depends on.
func (r *employeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE deleted_at IS NULL
	`
	if activeOnly {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.ChatHandle, &emp.HourlyRate, &emp.Status,
			&emp.StartTime, &emp.Timezone, &emp.GraceMinutes,
			&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, chat_handle = $2, hourly_rate = $3, status = $4,
			start_time = $5, timezone = $6, grace_minutes = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		emp.FullName, emp.ChatHandle, emp.HourlyRate, emp.Status,
		emp.StartTime, emp.Timezone, emp.GraceMinutes, emp.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_chat_handle") {
			return employee.ErrChatHandleExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
// Soft delete so historical imports and payroll runs keep resolving.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ExistsByChatHandle implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByChatHandle(ctx context.Context, chatHandle string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE chat_handle = $1 AND deleted_at IS NULL AND ($2::uuid IS NULL OR id != $2)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, chatHandle, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check chat handle: %w", err)
	}

	return exists, nil
}
