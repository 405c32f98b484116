package response

import (
	"errors"
	"net/http"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/domain/rate"
	"github.com/veripay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrNoDependents):
		BadRequest(w, "At least one dependent is required", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, payroll.ErrNoTimesheets):
		NotFound(w, "Payroll record has no timesheets")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this employee and period")
	case errors.Is(err, payroll.ErrTimesheetAlreadyExists):
		Conflict(w, "Timesheet already exists for this record and date")
	case errors.Is(err, payroll.ErrPeriodClosed):
		Conflict(w, "Payroll period is closed")
	case errors.Is(err, payroll.ErrRecordClosed):
		Conflict(w, "Payroll record is closed")
	case errors.Is(err, payroll.ErrNoEligibleEmployees):
		BadRequest(w, "No eligible employees for the requested span", nil)
	case errors.Is(err, payroll.ErrEmptyInput):
		BadRequest(w, "Input collection is empty", nil)
	case errors.Is(err, payroll.ErrNothingToGenerate):
		BadRequest(w, "No timesheets would be generated", nil)
	case errors.Is(err, payroll.ErrZeroNetWorkDays):
		BadRequest(w, "Period has zero net work days", nil)
	case errors.Is(err, payroll.ErrInvalidWeekendPolicy):
		BadRequest(w, "Invalid weekend policy", nil)
	case errors.Is(err, payroll.ErrPeriodEmployeeMismatch):
		BadRequest(w, "Employee does not belong to the period's organization", nil)

	// Configuration errors surface as conflicts: the data exists but the
	// effective-dated setup does not cover the calculation instant.
	case errors.Is(err, rate.ErrSelfDeductionNotFound),
		errors.Is(err, rate.ErrDependentDeductionNotFound),
		errors.Is(err, rate.ErrNoTaxBrackets),
		errors.Is(err, rate.ErrMalformedBracketSet):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
