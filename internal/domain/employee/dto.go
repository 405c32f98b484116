package employee

import (
	"github.com/shopspring/decimal"

	"github.com/veripay/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode    string          `json:"employee_code"`
	FullName        string          `json:"full_name"`
	HireDate        string          `json:"hire_date"`
	TerminationDate *string         `json:"termination_date,omitempty"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	InsuranceSalary decimal.Decimal `json:"insurance_salary"`
	TaxType         string          `json:"tax_type"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must match NNNN-NNNN"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid YYYY-MM-DD date"})
	}
	if r.TerminationDate != nil {
		if _, ok := validator.IsValidDate(*r.TerminationDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "termination_date", Message: "must be a valid YYYY-MM-DD date"})
		}
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.InsuranceSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "insurance_salary", Message: "must be non-negative"})
	}
	if !TaxType(r.TaxType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "tax_type", Message: "must be 'non_resident', 'resident_non_contract' or 'resident_progressive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID              string          `json:"id"`
	OrganizationID  string          `json:"organization_id"`
	EmployeeCode    string          `json:"employee_code"`
	FullName        string          `json:"full_name"`
	HireDate        string          `json:"hire_date"`
	TerminationDate *string         `json:"termination_date,omitempty"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	InsuranceSalary decimal.Decimal `json:"insurance_salary"`
	TaxType         string          `json:"tax_type"`
	IsActive        bool            `json:"is_active"`
}

type CreateDependentRequest struct {
	FullName      string  `json:"full_name"`
	Relationship  *string `json:"relationship,omitempty"`
	EffectiveDate string  `json:"effective_date"`
	EndDate       *string `json:"end_date,omitempty"`
}

func (r *CreateDependentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid YYYY-MM-DD date"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid YYYY-MM-DD date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DependentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	FullName      string  `json:"full_name"`
	Relationship  *string `json:"relationship,omitempty"`
	EffectiveDate string  `json:"effective_date"`
	EndDate       *string `json:"end_date,omitempty"`
	IsActive      bool    `json:"is_active"`
}
