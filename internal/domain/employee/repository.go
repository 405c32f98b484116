package employee

import "context"

// EmployeeRepository defines data access for employees and their dependents.
// All methods take organizationID explicitly to prevent cross-organization
// data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, organizationID string) (Employee, error)
	ListActive(ctx context.Context, organizationID string) ([]Employee, error)
	SoftDelete(ctx context.Context, id string, organizationID string) error

	CreateDependents(ctx context.Context, dependents []Dependent) ([]Dependent, error)
	ListDependents(ctx context.Context, employeeID string) ([]Dependent, error)
}
