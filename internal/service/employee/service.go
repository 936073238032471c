package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByChatHandle(ctx, req.ChatHandle, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check chat handle: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrChatHandleExists
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("invalid hourly rate: %w", err)
	}

	status := employee.StatusActive
	if req.Status != nil {
		status = employee.Status(*req.Status)
	}

	emp := employee.Employee{
		FullName:     req.FullName,
		ChatHandle:   req.ChatHandle,
		HourlyRate:   rate,
		Status:       status,
		StartTime:    req.StartTime,
		Timezone:     req.Timezone,
		GraceMinutes: req.GraceMinutes,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployeeToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) (employee.ListEmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: int64(len(responses)),
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ChatHandle != nil && *req.ChatHandle != emp.ChatHandle {
		exists, err := s.employeeRepo.ExistsByChatHandle(ctx, *req.ChatHandle, &emp.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check chat handle: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrChatHandleExists
		}
		emp.ChatHandle = *req.ChatHandle
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.HourlyRate != nil {
		rate, err := decimal.NewFromString(*req.HourlyRate)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("invalid hourly rate: %w", err)
		}
		emp.HourlyRate = rate
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}
	if req.StartTime != nil {
		emp.StartTime = req.StartTime
	}
	if req.Timezone != nil {
		emp.Timezone = req.Timezone
	}
	if req.GraceMinutes != nil {
		emp.GraceMinutes = req.GraceMinutes
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get updated employee: %w", err)
	}

	return mapEmployeeToResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// Roster implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Roster(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx, activeOnly)
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		FullName:     emp.FullName,
		ChatHandle:   emp.ChatHandle,
		HourlyRate:   emp.HourlyRate.StringFixed(2),
		Status:       string(emp.Status),
		StartTime:    emp.StartTime,
		Timezone:     emp.Timezone,
		GraceMinutes: emp.GraceMinutes,
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    emp.UpdatedAt.Format(time.RFC3339),
	}
}
