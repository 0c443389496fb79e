package employee

import (
	"context"
	"time"

	"github.com/santrikita/tpq-backend-go/internal/domain/employee"
	"github.com/santrikita/tpq-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.JoinDate != "" {
		parsed, _ := validator.IsValidDate(req.JoinDate)
		joinDate = parsed
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:    req.FullName,
		Role:        employee.Role(req.Role),
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		JoinDate:    joinDate,
		Status:      employee.StatusActive,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, mapToResponse(emp))
	}

	return result, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req.ID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(updated), nil
}

// DeactivateEmployee soft-deletes by flipping the status; payroll history
// referencing the employee stays intact.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	return s.employeeRepo.SetStatus(ctx, id, employee.StatusInactive)
}

func mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:          emp.ID,
		FullName:    emp.FullName,
		Role:        string(emp.Role),
		PhoneNumber: emp.PhoneNumber,
		Address:     emp.Address,
		JoinDate:    emp.JoinDate.Format("2006-01-02"),
		Status:      string(emp.Status),
	}
}
