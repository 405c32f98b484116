package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID              string
	OrganizationID  string
	EmployeeCode    string
	FullName        string
	HireDate        time.Time
	TerminationDate *time.Time
	BaseSalary      decimal.Decimal
	InsuranceSalary decimal.Decimal
	TaxType         TaxType
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time

	Dependents []Dependent
}

// EligibleForSpan reports whether the employee is employed across the whole
// window: hired by its first period's end and not terminated before its last
// period's end.
func (e Employee) EligibleForSpan(firstPeriodEnd, lastPeriodEnd time.Time) bool {
	if e.HireDate.After(firstPeriodEnd) {
		return false
	}
	return e.TerminationDate == nil || !e.TerminationDate.Before(lastPeriodEnd)
}

// EligibleForPeriod is the narrower month-level check used when attaching a
// payroll record to one period.
func (e Employee) EligibleForPeriod(periodEnd time.Time) bool {
	if e.HireDate.After(periodEnd) {
		return false
	}
	return e.TerminationDate == nil || !e.TerminationDate.Before(periodEnd)
}

type TaxType string

const (
	TaxTypeNonResident         TaxType = "non_resident"
	TaxTypeResidentNonContract TaxType = "resident_non_contract"
	TaxTypeResidentProgressive TaxType = "resident_progressive"
)

func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypeNonResident, TaxTypeResidentNonContract, TaxTypeResidentProgressive:
		return true
	}
	return false
}

type Dependent struct {
	ID            string
	EmployeeID    string
	FullName      string
	Relationship  *string
	EffectiveDate time.Time
	EndDate       *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CountsAt reports whether the dependent qualifies for the per-dependent tax
// deduction at the given instant.
func (d Dependent) CountsAt(at time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.EffectiveDate.After(at) {
		return false
	}
	return d.EndDate == nil || !d.EndDate.Before(at)
}
