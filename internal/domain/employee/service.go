package employee

import "context"

// EmployeeService manages the employee roster the payroll engine runs over.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, organizationID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	CreateDependents(ctx context.Context, organizationID string, employeeID string, reqs []CreateDependentRequest) ([]DependentResponse, error)
	GetEmployeeByID(ctx context.Context, organizationID string, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, organizationID string) ([]EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, organizationID string, id string) error
}
