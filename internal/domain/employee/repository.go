package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActiveByIDs(ctx context.Context, ids []string) ([]Employee, error)
	GetActiveByRoles(ctx context.Context, roles []Role) ([]Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	SetStatus(ctx context.Context, id string, status Status) error
}
