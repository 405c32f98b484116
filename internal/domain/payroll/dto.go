package payroll

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/veripay/payroll-backend-go/internal/pkg/validator"
	"github.com/veripay/payroll-backend-go/internal/pkg/workday"
)

// ========== PERIOD DTOs ==========

type InitPayrollByYearRequest struct {
	Year                int              `json:"year"`
	NetWorkDaysOverride *decimal.Decimal `json:"net_work_days_override,omitempty"`
	WeekendPolicy       string           `json:"weekend_policy"`
}

func (r *InitPayrollByYearRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.NetWorkDaysOverride != nil && r.NetWorkDaysOverride.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_work_days_override", Message: "must be non-negative"})
	}
	if !workday.Policy(r.WeekendPolicy).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "weekend_policy", Message: "must be 'none', 'sunday_only', 'saturday_and_sunday' or 'half_saturday_and_sunday'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatePayrollPeriodRequest struct {
	Year                int              `json:"year"`
	Month               int              `json:"month"`
	NetWorkDaysOverride *decimal.Decimal `json:"net_work_days_override,omitempty"`
	WeekendPolicy       string           `json:"weekend_policy"`
}

func (r *CreatePayrollPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.NetWorkDaysOverride != nil && r.NetWorkDaysOverride.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_work_days_override", Message: "must be non-negative"})
	}
	if !workday.Policy(r.WeekendPolicy).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "weekend_policy", Message: "must be 'none', 'sunday_only', 'saturday_and_sunday' or 'half_saturday_and_sunday'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Version        int             `json:"version"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	NetWorkDays    decimal.Decimal `json:"net_work_days"`
	WeekendPolicy  string          `json:"weekend_policy"`
	IsClosed       bool            `json:"is_closed"`
}

type InitPayrollByYearResponse struct {
	Year              int              `json:"year"`
	Version           int              `json:"version"`
	Periods           []PeriodResponse `json:"periods"`
	RecordsCreated    int              `json:"records_created"`
	TimesheetsCreated int              `json:"timesheets_created"`
}

// ========== RECORD DTOs ==========

type CreatePayrollRecordsRequest struct {
	PayrollPeriodID string   `json:"payroll_period_id"`
	EmployeeIDs     []string `json:"employee_ids"`
}

func (r *CreatePayrollRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_period_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string          `json:"id"`
	PayrollPeriodID string          `json:"payroll_period_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	EmployeeCode    *string         `json:"employee_code,omitempty"`
	TaxType         string          `json:"tax_type"`
	ActualWorkDays  decimal.Decimal `json:"actual_work_days"`
	GrossIncome     decimal.Decimal `json:"gross_income"`
	TotalDeduction  decimal.Decimal `json:"total_deduction"`
	NetIncome       decimal.Decimal `json:"net_income"`
	IsClosed        bool            `json:"is_closed"`
}

type ClosePayrollRecordsRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *ClosePayrollRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== TIMESHEET DTOs ==========

type UpdateTimesheetRequest struct {
	ID        string  `json:"id"`
	IsHoliday *bool   `json:"is_holiday,omitempty"`
	IsTripDay *bool   `json:"is_trip_day,omitempty"`
	LeaveType *string `json:"leave_type,omitempty"`
}

type UpdateTimesheetsRequest struct {
	Timesheets []UpdateTimesheetRequest `json:"timesheets"`
}

func (r *UpdateTimesheetsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Timesheets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "timesheets", Message: "at least one timesheet is required"})
	}
	for i, ts := range r.Timesheets {
		if validator.IsEmpty(ts.ID) {
			errs = append(errs, validator.ValidationError{Field: "timesheets[" + strconv.Itoa(i) + "].id", Message: "is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimesheetResponse struct {
	ID              string  `json:"id"`
	PayrollRecordID string  `json:"payroll_record_id"`
	Date            string  `json:"date"`
	IsWeekend       bool    `json:"is_weekend"`
	IsHoliday       bool    `json:"is_holiday"`
	IsTripDay       bool    `json:"is_trip_day"`
	LeaveType       *string `json:"leave_type,omitempty"`
}

// ========== CALCULATION DTOs ==========

// InsuranceLine is one employee-paid contribution in the calculation breakdown.
type InsuranceLine struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculationResponse carries every intermediate value of the deduction
// waterfall. Downstream payslip rendering consumes the breakdown, not just the
// final tax figure.
type CalculationResponse struct {
	PayrollRecordID         string          `json:"payroll_record_id"`
	EmployeeID              string          `json:"employee_id"`
	TaxType                 string          `json:"tax_type"`
	AsOf                    string          `json:"as_of"`
	ActualWorkDays          decimal.Decimal `json:"actual_work_days"`
	NetWorkDays             decimal.Decimal `json:"net_work_days"`
	BaseSalary              decimal.Decimal `json:"base_salary"`
	BaseSalaryActual        decimal.Decimal `json:"base_salary_of_actual_work_days"`
	TaxableAllowance        decimal.Decimal `json:"taxable_allowance"`
	NontaxableAllowance     decimal.Decimal `json:"nontaxable_allowance"`
	NontaxableIncome        decimal.Decimal `json:"nontaxable_income"`
	TaxableIncome           decimal.Decimal `json:"taxable_income"`
	SelfDeduction           decimal.Decimal `json:"self_deduction"`
	DependentCount          int             `json:"dependent_count"`
	DependentDeduction      decimal.Decimal `json:"dependent_deduction"`
	InsuranceDeduction      decimal.Decimal `json:"insurance_deduction"`
	InsuranceBreakdown      []InsuranceLine `json:"insurance_breakdown,omitempty"`
	ExcludedTaxableIncome   decimal.Decimal `json:"excluded_taxable_income"`
	CalculatedTaxableIncome decimal.Decimal `json:"calculated_taxable_income"`
	IncomeTax               decimal.Decimal `json:"income_tax"`
	GrossIncome             decimal.Decimal `json:"gross_income"`
	TotalDeduction          decimal.Decimal `json:"total_deduction"`
	NetIncome               decimal.Decimal `json:"net_income"`
	Items                   []ItemResponse  `json:"items"`
}

type ItemResponse struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}
