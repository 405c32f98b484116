package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/domain/rate"
)

// CalculationInput is the fully-resolved snapshot the calculator works on.
// The service assembles it (timesheets, dependents, configuration resolved as
// of the last timesheet date) so the calculation itself stays pure.
type CalculationInput struct {
	Employee   employee.Employee
	Period     payroll.PayrollPeriod
	Record     payroll.PayrollRecord
	Timesheets []payroll.Timesheet
	Dependents []employee.Dependent

	AllowanceRates     []rate.AllowanceRate
	SelfDeduction      decimal.Decimal
	DependentDeduction decimal.Decimal
	InsuranceGroup     *rate.InsuranceRateGroup
	TaxBrackets        []rate.IncomeTaxBracket
}

// CalculationResult carries every intermediate value of the waterfall; the
// breakdown is part of the contract, not just the final tax figure.
type CalculationResult struct {
	AsOf                    time.Time
	ActualWorkDays          decimal.Decimal
	BaseSalaryActual        decimal.Decimal
	TaxableAllowance        decimal.Decimal
	NontaxableAllowance     decimal.Decimal
	NontaxableIncome        decimal.Decimal
	TaxableIncome           decimal.Decimal
	SelfDeduction           decimal.Decimal
	DependentCount          int
	DependentDeduction      decimal.Decimal
	InsuranceDeduction      decimal.Decimal
	InsuranceBreakdown      []payroll.InsuranceLine
	ExcludedTaxableIncome   decimal.Decimal
	CalculatedTaxableIncome decimal.Decimal
	IncomeTax               decimal.Decimal
	GrossIncome             decimal.Decimal
	TotalDeduction          decimal.Decimal
	NetIncome               decimal.Decimal
	Items                   []payroll.PayrollItem
}

var (
	nonResidentRate         = decimal.NewFromFloat(0.20)
	residentNonContractRate = decimal.NewFromFloat(0.10)
)

// AsOfDate returns the lookup instant for effective-dated configuration: the
// latest timesheet date of the record.
func AsOfDate(timesheets []payroll.Timesheet) (time.Time, error) {
	if len(timesheets) == 0 {
		return time.Time{}, payroll.ErrNoTimesheets
	}
	asOf := timesheets[0].Date
	for _, ts := range timesheets[1:] {
		if ts.Date.After(asOf) {
			asOf = ts.Date
		}
	}
	return asOf, nil
}

// Calculate runs the salary proration, allowance split, deduction waterfall
// and income tax for one payroll record. It performs no I/O and no writes.
func Calculate(in CalculationInput) (CalculationResult, error) {
	asOf, err := AsOfDate(in.Timesheets)
	if err != nil {
		return CalculationResult{}, err
	}

	var actualDays int64
	for _, ts := range in.Timesheets {
		if ts.IsWorkDay() {
			actualDays++
		}
	}
	actualWorkDays := decimal.NewFromInt(actualDays)

	if in.Period.NetWorkDays.IsZero() {
		return CalculationResult{}, payroll.ErrZeroNetWorkDays
	}
	baseSalaryActual := in.Employee.BaseSalary.Mul(actualWorkDays).Div(in.Period.NetWorkDays)

	taxableAllowance := decimal.Zero
	nontaxableAllowance := decimal.Zero
	items := make([]payroll.PayrollItem, 0, len(in.AllowanceRates)+4)
	for _, ar := range in.AllowanceRates {
		if ar.IsTaxable {
			taxableAllowance = taxableAllowance.Add(ar.Amount)
		} else {
			nontaxableAllowance = nontaxableAllowance.Add(ar.Amount)
		}
		items = append(items, payroll.PayrollItem{
			PayrollRecordID: in.Record.ID,
			Name:            ar.Name,
			Type:            payroll.ItemTypeAllowance,
			Amount:          ar.Amount,
		})
	}

	nontaxableIncome := nontaxableAllowance
	taxableIncome := baseSalaryActual.Add(taxableAllowance).Sub(nontaxableIncome)

	excluded := decimal.Zero
	selfDeduction := decimal.Zero
	dependentDeduction := decimal.Zero
	insuranceDeduction := decimal.Zero
	dependentCount := 0
	var insuranceBreakdown []payroll.InsuranceLine

	taxType := employee.TaxType(in.Record.TaxType)
	if taxType == employee.TaxTypeResidentProgressive {
		selfDeduction = in.SelfDeduction
		excluded = excluded.Add(selfDeduction)

		for _, dep := range in.Dependents {
			if dep.CountsAt(asOf) {
				dependentCount++
			}
		}
		dependentDeduction = in.DependentDeduction.Mul(decimal.NewFromInt(int64(dependentCount)))
		excluded = excluded.Add(dependentDeduction)

		if in.InsuranceGroup != nil {
			for _, ir := range in.InsuranceGroup.Rates {
				if !ir.IsEmployeePaid {
					continue
				}
				amount := in.Employee.InsuranceSalary.Mul(ir.Rate)
				insuranceDeduction = insuranceDeduction.Add(amount)
				insuranceBreakdown = append(insuranceBreakdown, payroll.InsuranceLine{
					Name:   ir.Name,
					Rate:   ir.Rate,
					Amount: amount,
				})
				items = append(items, payroll.PayrollItem{
					PayrollRecordID: in.Record.ID,
					Name:            ir.Name,
					Type:            payroll.ItemTypeDeduction,
					Amount:          amount,
				})
			}
			excluded = excluded.Add(insuranceDeduction)
		}
	}

	calculatedTaxableIncome := taxableIncome.Sub(excluded)

	incomeTax, err := incomeTaxFor(taxType, calculatedTaxableIncome, in.TaxBrackets)
	if err != nil {
		return CalculationResult{}, err
	}
	if incomeTax.IsPositive() {
		items = append(items, payroll.PayrollItem{
			PayrollRecordID: in.Record.ID,
			Name:            "income tax",
			Type:            payroll.ItemTypeDeduction,
			Amount:          incomeTax,
		})
	}

	grossIncome := baseSalaryActual.Add(taxableAllowance).Add(nontaxableAllowance)
	totalDeduction := incomeTax.Add(insuranceDeduction)
	netIncome := grossIncome.Sub(totalDeduction)

	return CalculationResult{
		AsOf:                    asOf,
		ActualWorkDays:          actualWorkDays,
		BaseSalaryActual:        baseSalaryActual,
		TaxableAllowance:        taxableAllowance,
		NontaxableAllowance:     nontaxableAllowance,
		NontaxableIncome:        nontaxableIncome,
		TaxableIncome:           taxableIncome,
		SelfDeduction:           selfDeduction,
		DependentCount:          dependentCount,
		DependentDeduction:      dependentDeduction,
		InsuranceDeduction:      insuranceDeduction,
		InsuranceBreakdown:      insuranceBreakdown,
		ExcludedTaxableIncome:   excluded,
		CalculatedTaxableIncome: calculatedTaxableIncome,
		IncomeTax:               incomeTax,
		GrossIncome:             grossIncome,
		TotalDeduction:          totalDeduction,
		NetIncome:               netIncome,
		Items:                   items,
	}, nil
}

func incomeTaxFor(taxType employee.TaxType, income decimal.Decimal, brackets []rate.IncomeTaxBracket) (decimal.Decimal, error) {
	if !income.IsPositive() {
		return decimal.Zero, nil
	}

	switch taxType {
	case employee.TaxTypeNonResident:
		return income.Mul(nonResidentRate).Round(0), nil
	case employee.TaxTypeResidentNonContract:
		return income.Mul(residentNonContractRate).Round(0), nil
	case employee.TaxTypeResidentProgressive:
		if len(brackets) == 0 {
			return decimal.Zero, rate.ErrNoTaxBrackets
		}
		return progressiveTax(income, brackets), nil
	}
	return decimal.Zero, nil
}

// progressiveTax walks ordered brackets taking the marginal amount in each.
// A nil max marks the unbounded top bracket, which absorbs whatever remains.
// The schedule is assumed contiguous and gapless; see ValidateBracketSet.
func progressiveTax(income decimal.Decimal, brackets []rate.IncomeTaxBracket) decimal.Decimal {
	remaining := income
	totalTax := decimal.Zero

	for _, b := range brackets {
		width := remaining
		if b.Max != nil {
			width = b.Max.Sub(b.Min)
		}
		amountInBracket := decimal.Min(remaining, width)
		if amountInBracket.IsPositive() {
			totalTax = totalTax.Add(amountInBracket.Mul(b.TaxRate))
			remaining = remaining.Sub(amountInBracket)
		}
		if !remaining.IsPositive() {
			break
		}
	}

	return totalTax.Round(0)
}

// ValidateBracketSet checks that brackets start at zero, are contiguous and
// end with an unbounded bracket. A malformed set would silently under- or
// over-compute tax, so batch callers may verify configuration up front.
func ValidateBracketSet(brackets []rate.IncomeTaxBracket) error {
	if len(brackets) == 0 {
		return rate.ErrNoTaxBrackets
	}
	expectedMin := decimal.Zero
	for i, b := range brackets {
		if !b.Min.Equal(expectedMin) {
			return rate.ErrMalformedBracketSet
		}
		if b.Max == nil {
			if i != len(brackets)-1 {
				return rate.ErrMalformedBracketSet
			}
			return nil
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return rate.ErrMalformedBracketSet
		}
		expectedMin = *b.Max
	}
	// Last bracket bounded: schedule does not cover [0, +inf).
	return rate.ErrMalformedBracketSet
}
