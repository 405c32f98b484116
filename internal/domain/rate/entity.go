package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceRate - Recurring allowance paid on top of base salary.
// OrganizationID nil means the rate applies globally.
type AllowanceRate struct {
	ID             string
	OrganizationID *string
	Name           string
	Amount         decimal.Decimal
	IsTaxable      bool
	EffectiveDate  time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (r AllowanceRate) Window() (time.Time, *time.Time) { return r.EffectiveDate, r.EndDate }
func (r AllowanceRate) Scope() *string                  { return r.OrganizationID }

// IncomeTaxBracket - One marginal-rate band of a progressive schedule.
// Brackets sharing a group are walked in Order ascending; a nil Max marks the
// unbounded top bracket.
type IncomeTaxBracket struct {
	ID             string
	OrganizationID *string
	BracketGroup   string
	Order          int
	Min            decimal.Decimal
	Max            *decimal.Decimal
	TaxRate        decimal.Decimal
	EffectiveDate  time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (b IncomeTaxBracket) Window() (time.Time, *time.Time) { return b.EffectiveDate, b.EndDate }
func (b IncomeTaxBracket) Scope() *string                  { return b.OrganizationID }

// InsuranceRateGroup - A named set of insurance rates in force over a window.
type InsuranceRateGroup struct {
	ID             string
	OrganizationID *string
	Name           string
	EffectiveDate  time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time

	Rates []InsuranceRate
}

func (g InsuranceRateGroup) Window() (time.Time, *time.Time) { return g.EffectiveDate, g.EndDate }
func (g InsuranceRateGroup) Scope() *string                  { return g.OrganizationID }

// InsuranceRate - One contribution line inside a group. Rate is a fraction of
// the employee's insurance salary; only employee-paid lines reduce taxable
// income.
type InsuranceRate struct {
	ID                   string
	InsuranceRateGroupID string
	Name                 string
	Rate                 decimal.Decimal
	IsEmployeePaid       bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SelfDeductionAmount - Fixed taxable-income deduction per taxpayer.
type SelfDeductionAmount struct {
	ID             string
	OrganizationID *string
	Amount         decimal.Decimal
	EffectiveDate  time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (a SelfDeductionAmount) Window() (time.Time, *time.Time) { return a.EffectiveDate, a.EndDate }
func (a SelfDeductionAmount) Scope() *string                  { return a.OrganizationID }

// DependentDeductionAmount - Fixed taxable-income deduction per qualifying
// dependent.
type DependentDeductionAmount struct {
	ID             string
	OrganizationID *string
	Amount         decimal.Decimal
	EffectiveDate  time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (a DependentDeductionAmount) Window() (time.Time, *time.Time) { return a.EffectiveDate, a.EndDate }
func (a DependentDeductionAmount) Scope() *string                  { return a.OrganizationID }
