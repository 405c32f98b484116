package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/veripay/payroll-backend-go/internal/pkg/workday"
)

// PayrollPeriod - One versioned calendar-month window for an organization.
// Versions per (organization, year) are monotonically increasing and never
// reused, so an annual run can be repeated without clobbering earlier data.
type PayrollPeriod struct {
	ID             string
	OrganizationID string
	Year           int
	Month          int
	Version        int
	StartDate      time.Time
	EndDate        time.Time
	NetWorkDays    decimal.Decimal
	WeekendPolicy  workday.Policy
	IsClosed       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayrollRecord - One employee's payroll for one period. Open records accept
// timesheet mutation and recalculation; closing is one-way.
type PayrollRecord struct {
	ID              string
	PayrollPeriodID string
	EmployeeID      string
	TaxType         string
	ActualWorkDays  decimal.Decimal
	GrossIncome     decimal.Decimal
	TotalDeduction  decimal.Decimal
	NetIncome       decimal.Decimal
	IsClosed        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Timesheet - One calendar day's attendance entry for a payroll record.
// Unique on (payroll_record_id, date).
type Timesheet struct {
	ID              string
	PayrollRecordID string
	Date            time.Time
	IsWeekend       bool
	IsHoliday       bool
	IsTripDay       bool
	LeaveType       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsWorkDay reports whether the day counts toward actual work days.
func (t Timesheet) IsWorkDay() bool {
	return !t.IsWeekend && !t.IsHoliday && !t.IsTripDay
}

// ItemType enum
type ItemType string

const (
	ItemTypeAllowance ItemType = "allowance"
	ItemTypeDeduction ItemType = "deduction"
)

// PayrollItem - A named computed or input line attached to a record.
type PayrollItem struct {
	ID              string
	PayrollRecordID string
	Name            string
	Type            ItemType
	Amount          decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
