package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/domain/rate"
	"github.com/veripay/payroll-backend-go/internal/pkg/workday"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrDec(d decimal.Decimal) *decimal.Decimal { return &d }
func ptrTime(t time.Time) *time.Time            { return &t }

// monthTimesheets builds one timesheet per calendar day of the month with the
// weekend flag derived from the policy.
func monthTimesheets(y int, m time.Month, policy workday.Policy) []payroll.Timesheet {
	start := day(y, m, 1)
	end := start.AddDate(0, 1, -1)
	var sheets []payroll.Timesheet
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		sheets = append(sheets, payroll.Timesheet{
			PayrollRecordID: "rec-1",
			Date:            d,
			IsWeekend:       workday.IsWeekend(d, policy),
		})
	}
	return sheets
}

func progressiveBrackets() []rate.IncomeTaxBracket {
	return []rate.IncomeTaxBracket{
		{Order: 1, Min: decimal.Zero, Max: ptrDec(decimal.NewFromInt(10000000)), TaxRate: decimal.NewFromFloat(0.05)},
		{Order: 2, Min: decimal.NewFromInt(10000000), Max: ptrDec(decimal.NewFromInt(20000000)), TaxRate: decimal.NewFromFloat(0.10)},
		{Order: 3, Min: decimal.NewFromInt(20000000), Max: nil, TaxRate: decimal.NewFromFloat(0.15)},
	}
}

func baseInput() CalculationInput {
	period := payroll.PayrollPeriod{
		ID:            "per-1",
		Year:          2024,
		Month:         12,
		StartDate:     day(2024, time.December, 1),
		EndDate:       day(2024, time.December, 31),
		NetWorkDays:   decimal.NewFromInt(26),
		WeekendPolicy: workday.PolicySundayOnly,
	}
	return CalculationInput{
		Employee: employee.Employee{
			ID:              "emp-1",
			BaseSalary:      decimal.NewFromInt(26000000),
			InsuranceSalary: decimal.NewFromInt(10000000),
		},
		Period:     period,
		Record:     payroll.PayrollRecord{ID: "rec-1", TaxType: string(employee.TaxTypeResidentProgressive)},
		Timesheets: monthTimesheets(2024, time.December, workday.PolicySundayOnly),
	}
}

func TestAsOfDate(t *testing.T) {
	t.Parallel()

	sheets := monthTimesheets(2024, time.December, workday.PolicySundayOnly)
	asOf, err := AsOfDate(sheets)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.December, 31), asOf)

	_, err = AsOfDate(nil)
	assert.ErrorIs(t, err, payroll.ErrNoTimesheets)
}

func TestCalculate_FullAttendanceProration(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.Record.TaxType = string(employee.TaxTypeNonResident)

	result, err := Calculate(in)
	require.NoError(t, err)

	// December 2024 under sunday_only: 26 work days out of 26 net work days.
	assert.True(t, result.ActualWorkDays.Equal(decimal.NewFromInt(26)), "got %s", result.ActualWorkDays)
	assert.True(t, result.BaseSalaryActual.Equal(decimal.NewFromInt(26000000)), "got %s", result.BaseSalaryActual)
}

func TestCalculate_HolidaysAndTripDaysReduceActualDays(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.Record.TaxType = string(employee.TaxTypeNonResident)
	// Dec 2 is a Monday, Dec 3 a Tuesday.
	in.Timesheets[1].IsHoliday = true
	in.Timesheets[2].IsTripDay = true

	result, err := Calculate(in)
	require.NoError(t, err)

	assert.True(t, result.ActualWorkDays.Equal(decimal.NewFromInt(24)), "got %s", result.ActualWorkDays)
	assert.True(t, result.BaseSalaryActual.Equal(decimal.NewFromInt(24000000)), "got %s", result.BaseSalaryActual)
}

func TestCalculate_AllowanceSplit(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.Record.TaxType = string(employee.TaxTypeNonResident)
	in.AllowanceRates = []rate.AllowanceRate{
		{Name: "position allowance", Amount: decimal.NewFromInt(2000000), IsTaxable: true},
		{Name: "meal allowance", Amount: decimal.NewFromInt(500000), IsTaxable: false},
		{Name: "transport allowance", Amount: decimal.NewFromInt(300000), IsTaxable: false},
	}

	result, err := Calculate(in)
	require.NoError(t, err)

	assert.True(t, result.TaxableAllowance.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, result.NontaxableAllowance.Equal(decimal.NewFromInt(800000)))
	assert.True(t, result.NontaxableIncome.Equal(decimal.NewFromInt(800000)))
	// 26,000,000 + 2,000,000 - 800,000
	assert.True(t, result.TaxableIncome.Equal(decimal.NewFromInt(27200000)), "got %s", result.TaxableIncome)
	// Gross carries all allowances.
	assert.True(t, result.GrossIncome.Equal(decimal.NewFromInt(28800000)), "got %s", result.GrossIncome)
	assert.Len(t, result.Items, 4) // 3 allowances + income tax
}

func TestCalculate_ProgressiveWaterfall(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.SelfDeduction = decimal.NewFromInt(500000)
	in.DependentDeduction = decimal.NewFromInt(250000)
	in.Dependents = []employee.Dependent{
		{FullName: "a", IsActive: true},
		{FullName: "b", IsActive: true, EndDate: ptrTime(day(2025, time.June, 30))},
		{FullName: "ended", IsActive: true, EndDate: ptrTime(day(2024, time.June, 30))},
		{FullName: "inactive", IsActive: false},
	}
	in.InsuranceGroup = &rate.InsuranceRateGroup{
		Name: "standard",
		Rates: []rate.InsuranceRate{
			{Name: "health insurance", Rate: decimal.NewFromFloat(0.01), IsEmployeePaid: true},
			{Name: "pension", Rate: decimal.NewFromFloat(0.02), IsEmployeePaid: true},
			{Name: "employer health", Rate: decimal.NewFromFloat(0.04), IsEmployeePaid: false},
		},
	}
	in.TaxBrackets = progressiveBrackets()

	result, err := Calculate(in)
	require.NoError(t, err)

	// Two dependents still effective at 2024-12-31.
	assert.Equal(t, 2, result.DependentCount)
	assert.True(t, result.DependentDeduction.Equal(decimal.NewFromInt(500000)))
	assert.True(t, result.SelfDeduction.Equal(decimal.NewFromInt(500000)))
	// Employee-paid insurance only: 10M * (0.01 + 0.02) = 300,000.
	assert.True(t, result.InsuranceDeduction.Equal(decimal.NewFromInt(300000)), "got %s", result.InsuranceDeduction)
	assert.Len(t, result.InsuranceBreakdown, 2)
	// excluded = 500,000 + 500,000 + 300,000
	assert.True(t, result.ExcludedTaxableIncome.Equal(decimal.NewFromInt(1300000)))
	// calculated = 26,000,000 - 1,300,000 = 24,700,000
	assert.True(t, result.CalculatedTaxableIncome.Equal(decimal.NewFromInt(24700000)), "got %s", result.CalculatedTaxableIncome)
	// 10M*5% + 10M*10% + 4.7M*15% = 500,000 + 1,000,000 + 705,000
	assert.True(t, result.IncomeTax.Equal(decimal.NewFromInt(2205000)), "got %s", result.IncomeTax)
}

func TestCalculate_ZeroActiveDependents(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.SelfDeduction = decimal.NewFromInt(500000)
	in.DependentDeduction = decimal.NewFromInt(250000)
	in.Dependents = []employee.Dependent{
		{FullName: "ended", IsActive: true, EndDate: ptrTime(day(2024, time.January, 31))},
	}
	in.TaxBrackets = progressiveBrackets()

	result, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, 0, result.DependentCount)
	assert.True(t, result.DependentDeduction.IsZero())
}

func TestCalculate_NoTimesheets(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.Timesheets = nil

	_, err := Calculate(in)
	assert.ErrorIs(t, err, payroll.ErrNoTimesheets)
}

func TestCalculate_ZeroNetWorkDays(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.Period.NetWorkDays = decimal.Zero

	_, err := Calculate(in)
	assert.ErrorIs(t, err, payroll.ErrZeroNetWorkDays)
}

func TestProgressiveTax_ThreeBandExample(t *testing.T) {
	t.Parallel()

	// 10M*5% + 10M*10% + 5M*15% = 2,250,000
	got := progressiveTax(decimal.NewFromInt(25000000), progressiveBrackets())
	assert.True(t, got.Equal(decimal.NewFromInt(2250000)), "got %s", got)
}

func TestProgressiveTax_StopsInsideLowerBracket(t *testing.T) {
	t.Parallel()

	got := progressiveTax(decimal.NewFromInt(4000000), progressiveBrackets())
	assert.True(t, got.Equal(decimal.NewFromInt(200000)), "got %s", got)
}

func TestIncomeTaxFor_NonPositiveIncomeIsZero(t *testing.T) {
	t.Parallel()

	for _, taxType := range []employee.TaxType{
		employee.TaxTypeNonResident,
		employee.TaxTypeResidentNonContract,
		employee.TaxTypeResidentProgressive,
	} {
		tax, err := incomeTaxFor(taxType, decimal.NewFromInt(-100), nil)
		require.NoError(t, err)
		assert.True(t, tax.IsZero(), "tax type %s", taxType)

		tax, err = incomeTaxFor(taxType, decimal.Zero, nil)
		require.NoError(t, err)
		assert.True(t, tax.IsZero(), "tax type %s", taxType)
	}
}

func TestIncomeTaxFor_FlatRates(t *testing.T) {
	t.Parallel()

	tax, err := incomeTaxFor(employee.TaxTypeNonResident, decimal.NewFromInt(10000000), nil)
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(2000000)), "got %s", tax)

	tax, err = incomeTaxFor(employee.TaxTypeResidentNonContract, decimal.NewFromInt(10000000), nil)
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(1000000)), "got %s", tax)

	// Rounded to the nearest whole unit.
	tax, err = incomeTaxFor(employee.TaxTypeNonResident, decimal.NewFromFloat(1000000.55), nil)
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(200000)), "got %s", tax)
}

func TestIncomeTaxFor_ProgressiveWithoutBrackets(t *testing.T) {
	t.Parallel()

	_, err := incomeTaxFor(employee.TaxTypeResidentProgressive, decimal.NewFromInt(1000), nil)
	assert.ErrorIs(t, err, rate.ErrNoTaxBrackets)
}

func TestValidateBracketSet(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateBracketSet(progressiveBrackets()))

	assert.ErrorIs(t, ValidateBracketSet(nil), rate.ErrNoTaxBrackets)

	gap := progressiveBrackets()
	gap[1].Min = decimal.NewFromInt(12000000)
	assert.ErrorIs(t, ValidateBracketSet(gap), rate.ErrMalformedBracketSet)

	bounded := progressiveBrackets()
	bounded[2].Max = ptrDec(decimal.NewFromInt(50000000))
	assert.ErrorIs(t, ValidateBracketSet(bounded), rate.ErrMalformedBracketSet)

	early := []rate.IncomeTaxBracket{
		{Min: decimal.Zero, Max: nil, TaxRate: decimal.NewFromFloat(0.05)},
		{Min: decimal.Zero, Max: nil, TaxRate: decimal.NewFromFloat(0.10)},
	}
	assert.ErrorIs(t, ValidateBracketSet(early), rate.ErrMalformedBracketSet)
}
