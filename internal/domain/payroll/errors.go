package payroll

import "errors"

var (
	ErrPeriodNotFound         = errors.New("payroll period not found")
	ErrRecordNotFound         = errors.New("payroll record not found")
	ErrTimesheetNotFound      = errors.New("timesheet not found")
	ErrNoTimesheets           = errors.New("payroll record has no timesheets")
	ErrRecordAlreadyExists    = errors.New("payroll record already exists for this employee and period")
	ErrTimesheetAlreadyExists = errors.New("timesheet already exists for this record and date")
	ErrPeriodClosed           = errors.New("payroll period is closed")
	ErrRecordClosed           = errors.New("payroll record is closed")
	ErrNoEligibleEmployees    = errors.New("no employees eligible for the requested span")
	ErrEmptyInput             = errors.New("input collection is empty")
	ErrNothingToGenerate      = errors.New("no timesheets would be generated")
	ErrZeroNetWorkDays        = errors.New("period has zero net work days")
	ErrInvalidWeekendPolicy   = errors.New("invalid weekend policy")
	ErrPeriodEmployeeMismatch = errors.New("employee does not belong to the period's organization")
)
