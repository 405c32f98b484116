package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, organization_id, employee_code, full_name, hire_date, termination_date,
	base_salary, insurance_salary, tax_type, is_active, created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.OrganizationID, &e.EmployeeCode, &e.FullName, &e.HireDate, &e.TerminationDate,
		&e.BaseSalary, &e.InsuranceSalary, &e.TaxType, &e.IsActive, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			organization_id, employee_code, full_name, hire_date, termination_date,
			base_salary, insurance_salary, tax_type, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.OrganizationID, emp.EmployeeCode, emp.FullName, emp.HireDate, emp.TerminationDate,
		emp.BaseSalary, emp.InsuranceSalary, emp.TaxType, emp.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListActive(ctx context.Context, organizationID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE organization_id = $1 AND is_active = true AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), is_active = false, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, organizationID).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) CreateDependents(ctx context.Context, dependents []employee.Dependent) ([]employee.Dependent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dependents (employee_id, full_name, relationship, effective_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, full_name, relationship, effective_date, end_date, is_active, created_at, updated_at
	`

	created := make([]employee.Dependent, 0, len(dependents))
	for _, dep := range dependents {
		var d employee.Dependent
		err := q.QueryRow(ctx, query,
			dep.EmployeeID, dep.FullName, dep.Relationship, dep.EffectiveDate, dep.EndDate, dep.IsActive,
		).Scan(
			&d.ID, &d.EmployeeID, &d.FullName, &d.Relationship, &d.EffectiveDate, &d.EndDate, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create dependent: %w", err)
		}
		created = append(created, d)
	}

	return created, nil
}

func (r *employeeRepository) ListDependents(ctx context.Context, employeeID string) ([]employee.Dependent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, full_name, relationship, effective_date, end_date, is_active, created_at, updated_at
		FROM dependents
		WHERE employee_id = $1
		ORDER BY effective_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependents: %w", err)
	}
	defer rows.Close()

	var dependents []employee.Dependent
	for rows.Next() {
		var d employee.Dependent
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.FullName, &d.Relationship, &d.EffectiveDate, &d.EndDate, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dependent: %w", err)
		}
		dependents = append(dependents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dependents: %w", err)
	}

	return dependents, nil
}
