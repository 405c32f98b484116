package employee

import (
	"context"
	"time"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
	"github.com/veripay/payroll-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, organizationID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	var terminationDate *time.Time
	if req.TerminationDate != nil {
		td, _ := validator.IsValidDate(*req.TerminationDate)
		terminationDate = &td
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		OrganizationID:  organizationID,
		EmployeeCode:    req.EmployeeCode,
		FullName:        req.FullName,
		HireDate:        hireDate,
		TerminationDate: terminationDate,
		BaseSalary:      req.BaseSalary,
		InsuranceSalary: req.InsuranceSalary,
		TaxType:         employee.TaxType(req.TaxType),
		IsActive:        true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) CreateDependents(ctx context.Context, organizationID string, employeeID string, reqs []employee.CreateDependentRequest) ([]employee.DependentResponse, error) {
	if len(reqs) == 0 {
		return nil, employee.ErrNoDependents
	}
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	// Ownership check before writing anything.
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, organizationID); err != nil {
		return nil, err
	}

	dependents := make([]employee.Dependent, 0, len(reqs))
	for _, req := range reqs {
		effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)
		var endDate *time.Time
		if req.EndDate != nil {
			ed, _ := validator.IsValidDate(*req.EndDate)
			endDate = &ed
		}
		dependents = append(dependents, employee.Dependent{
			EmployeeID:    employeeID,
			FullName:      req.FullName,
			Relationship:  req.Relationship,
			EffectiveDate: effectiveDate,
			EndDate:       endDate,
			IsActive:      true,
		})
	}

	created, err := s.employeeRepo.CreateDependents(ctx, dependents)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.DependentResponse, 0, len(created))
	for _, d := range created {
		responses = append(responses, toDependentResponse(d))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) GetEmployeeByID(ctx context.Context, organizationID string, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, organizationID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, organizationID string, id string) error {
	return s.employeeRepo.SoftDelete(ctx, id, organizationID)
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	var terminationDate *string
	if emp.TerminationDate != nil {
		s := emp.TerminationDate.Format(dateLayout)
		terminationDate = &s
	}

	return employee.EmployeeResponse{
		ID:              emp.ID,
		OrganizationID:  emp.OrganizationID,
		EmployeeCode:    emp.EmployeeCode,
		FullName:        emp.FullName,
		HireDate:        emp.HireDate.Format(dateLayout),
		TerminationDate: terminationDate,
		BaseSalary:      emp.BaseSalary,
		InsuranceSalary: emp.InsuranceSalary,
		TaxType:         string(emp.TaxType),
		IsActive:        emp.IsActive,
	}
}

func toDependentResponse(d employee.Dependent) employee.DependentResponse {
	var endDate *string
	if d.EndDate != nil {
		s := d.EndDate.Format(dateLayout)
		endDate = &s
	}

	return employee.DependentResponse{
		ID:            d.ID,
		EmployeeID:    d.EmployeeID,
		FullName:      d.FullName,
		Relationship:  d.Relationship,
		EffectiveDate: d.EffectiveDate.Format(dateLayout),
		EndDate:       endDate,
		IsActive:      d.IsActive,
	}
}
