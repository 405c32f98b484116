package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
	"github.com/veripay/payroll-backend-go/internal/pkg/workday"
	"github.com/veripay/payroll-backend-go/internal/repository/postgresql"
	ratesvc "github.com/veripay/payroll-backend-go/internal/service/rate"
)

const dateLayout = "2006-01-02"

type Service struct {
	db            *database.DB
	periodRepo    payroll.PeriodRepository
	recordRepo    payroll.RecordRepository
	timesheetRepo payroll.TimesheetRepository
	employeeRepo  employee.EmployeeRepository
	resolver      *ratesvc.Resolver
}

func NewService(
	db *database.DB,
	periodRepo payroll.PeriodRepository,
	recordRepo payroll.RecordRepository,
	timesheetRepo payroll.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *ratesvc.Resolver,
) payroll.PayrollService {
	return &Service{
		db:            db,
		periodRepo:    periodRepo,
		recordRepo:    recordRepo,
		timesheetRepo: timesheetRepo,
		employeeRepo:  employeeRepo,
		resolver:      resolver,
	}
}

// InitPayrollByYear creates the next version of all 12 monthly periods for the
// year, one payroll record per eligible employee per period, and one timesheet
// per record per calendar day. Everything runs in a single transaction: any
// failure leaves no partial periods, records or timesheets behind.
func (s *Service) InitPayrollByYear(ctx context.Context, organizationID string, req payroll.InitPayrollByYearRequest) (payroll.InitPayrollByYearResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.InitPayrollByYearResponse{}, err
	}
	policy := workday.Policy(req.WeekendPolicy)

	var resp payroll.InitPayrollByYearResponse
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		version, err := s.periodRepo.NextVersion(txCtx, organizationID, req.Year)
		if err != nil {
			return err
		}

		periods := make([]payroll.PayrollPeriod, 0, 12)
		for month := 1; month <= 12; month++ {
			periods = append(periods, buildPeriod(organizationID, req.Year, month, version, policy, req.NetWorkDaysOverride))
		}
		created, err := s.periodRepo.CreateMany(txCtx, periods)
		if err != nil {
			return err
		}

		employees, err := s.employeeRepo.ListActive(txCtx, organizationID)
		if err != nil {
			return err
		}
		firstEnd := created[0].EndDate
		lastEnd := created[len(created)-1].EndDate
		eligible := make([]employee.Employee, 0, len(employees))
		for _, e := range employees {
			if e.EligibleForSpan(firstEnd, lastEnd) {
				eligible = append(eligible, e)
			}
		}
		if len(eligible) == 0 {
			return payroll.ErrNoEligibleEmployees
		}

		recordsCreated := 0
		timesheetsCreated := 0
		for _, period := range created {
			records := make([]payroll.PayrollRecord, 0, len(eligible))
			for _, e := range eligible {
				if !e.EligibleForPeriod(period.EndDate) {
					continue
				}
				records = append(records, payroll.PayrollRecord{
					PayrollPeriodID: period.ID,
					EmployeeID:      e.ID,
					TaxType:         string(e.TaxType),
				})
			}
			if len(records) == 0 {
				// Period stays persisted; it just carries no records yet.
				continue
			}
			createdRecords, err := s.recordRepo.CreateMany(txCtx, records)
			if err != nil {
				return err
			}
			recordsCreated += len(createdRecords)

			n, err := s.generateTimesheets(txCtx, period, createdRecords)
			if err != nil {
				return err
			}
			timesheetsCreated += n
		}

		resp = payroll.InitPayrollByYearResponse{
			Year:              req.Year,
			Version:           version,
			Periods:           toPeriodResponses(created),
			RecordsCreated:    recordsCreated,
			TimesheetsCreated: timesheetsCreated,
		}
		return nil
	})
	if err != nil {
		return payroll.InitPayrollByYearResponse{}, err
	}

	return resp, nil
}

// CreatePayrollPeriod creates a single monthly period with the same version
// semantics as the annual run: next version for the (organization, year).
func (s *Service) CreatePayrollPeriod(ctx context.Context, organizationID string, req payroll.CreatePayrollPeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}
	policy := workday.Policy(req.WeekendPolicy)

	var created payroll.PayrollPeriod
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		version, err := s.periodRepo.NextVersion(txCtx, organizationID, req.Year)
		if err != nil {
			return err
		}
		periods, err := s.periodRepo.CreateMany(txCtx, []payroll.PayrollPeriod{
			buildPeriod(organizationID, req.Year, req.Month, version, policy, req.NetWorkDaysOverride),
		})
		if err != nil {
			return err
		}
		created = periods[0]
		return nil
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(created), nil
}

// CreatePayrollRecords attaches records for the given employees to an open
// period and generates their timesheets, all in one transaction.
func (s *Service) CreatePayrollRecords(ctx context.Context, organizationID string, req payroll.CreatePayrollRecordsRequest) ([]payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.EmployeeIDs) == 0 {
		return nil, payroll.ErrEmptyInput
	}

	period, err := s.periodRepo.GetByID(ctx, req.PayrollPeriodID, organizationID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, payroll.ErrPeriodClosed
	}

	var created []payroll.PayrollRecord
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		records := make([]payroll.PayrollRecord, 0, len(req.EmployeeIDs))
		for _, employeeID := range req.EmployeeIDs {
			emp, err := s.employeeRepo.GetByID(txCtx, employeeID, organizationID)
			if err != nil {
				return err
			}
			if emp.OrganizationID != period.OrganizationID {
				return payroll.ErrPeriodEmployeeMismatch
			}
			if !emp.EligibleForPeriod(period.EndDate) {
				continue
			}
			records = append(records, payroll.PayrollRecord{
				PayrollPeriodID: period.ID,
				EmployeeID:      emp.ID,
				TaxType:         string(emp.TaxType),
			})
		}
		if len(records) == 0 {
			return payroll.ErrNoEligibleEmployees
		}

		created, err = s.recordRepo.CreateMany(txCtx, records)
		if err != nil {
			return err
		}
		if _, err := s.generateTimesheets(txCtx, period, created); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(created))
	for _, rec := range created {
		responses = append(responses, toRecordResponse(rec))
	}
	return responses, nil
}

// UpdateTimesheets applies a batch of day-level mutations. A single timesheet
// belonging to a closed record fails the whole batch.
func (s *Service) UpdateTimesheets(ctx context.Context, organizationID string, req payroll.UpdateTimesheetsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, ts := range req.Timesheets {
			_, isClosed, err := s.timesheetRepo.GetRecordState(txCtx, ts.ID, organizationID)
			if err != nil {
				return err
			}
			if isClosed {
				return payroll.ErrRecordClosed
			}
			if err := s.timesheetRepo.Update(txCtx, ts); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPayrollRecordByID runs the full calculation for one record and returns
// the breakdown. Read-only: nothing is persisted.
func (s *Service) GetPayrollRecordByID(ctx context.Context, organizationID string, recordID string) (payroll.CalculationResponse, error) {
	record, err := s.recordRepo.GetByID(ctx, recordID, organizationID)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	input, err := s.assembleInput(ctx, organizationID, record)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	result, err := Calculate(input)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	return toCalculationResponse(record, input.Period, input.Employee, result), nil
}

// ClosePayrollRecords recalculates each record, persists its totals and line
// items, and flips it to closed. Closing is one-way; a record already closed
// fails the whole batch and rolls everything back.
func (s *Service) ClosePayrollRecords(ctx context.Context, organizationID string, req payroll.ClosePayrollRecordsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, recordID := range req.RecordIDs {
			record, err := s.recordRepo.GetByID(txCtx, recordID, organizationID)
			if err != nil {
				return err
			}
			if record.IsClosed {
				return payroll.ErrRecordClosed
			}

			input, err := s.assembleInput(txCtx, organizationID, record)
			if err != nil {
				return err
			}
			result, err := Calculate(input)
			if err != nil {
				return err
			}

			record.ActualWorkDays = result.ActualWorkDays
			record.GrossIncome = result.GrossIncome
			record.TotalDeduction = result.TotalDeduction
			record.NetIncome = result.NetIncome
			if err := s.recordRepo.UpdateTotals(txCtx, record); err != nil {
				return err
			}
			if err := s.recordRepo.DeleteItemsByRecord(txCtx, record.ID); err != nil {
				return err
			}
			if _, err := s.recordRepo.CreateItems(txCtx, result.Items); err != nil {
				return err
			}
		}

		affected, err := s.recordRepo.Close(txCtx, req.RecordIDs, organizationID)
		if err != nil {
			return err
		}
		if affected != int64(len(req.RecordIDs)) {
			return payroll.ErrRecordClosed
		}
		return nil
	})
}

// generateTimesheets emits one row per record per calendar day of the period.
// Precondition: every record in the period is open, including records that
// predate this call; a closed record anywhere fails the whole operation. The
// weekend flag is derived per day from the period's weekend policy; holiday
// and trip flags start false and are set later through UpdateTimesheets.
func (s *Service) generateTimesheets(ctx context.Context, period payroll.PayrollPeriod, records []payroll.PayrollRecord) (int, error) {
	existing, err := s.recordRepo.ListByPeriod(ctx, period.ID)
	if err != nil {
		return 0, err
	}
	for _, rec := range existing {
		if rec.IsClosed {
			return 0, payroll.ErrRecordClosed
		}
	}

	var timesheets []payroll.Timesheet
	for _, rec := range records {
		for d := period.StartDate; !d.After(period.EndDate); d = d.AddDate(0, 0, 1) {
			timesheets = append(timesheets, payroll.Timesheet{
				PayrollRecordID: rec.ID,
				Date:            d,
				IsWeekend:       workday.IsWeekend(d, period.WeekendPolicy),
			})
		}
	}
	if len(timesheets) == 0 {
		return 0, payroll.ErrNothingToGenerate
	}

	created, err := s.timesheetRepo.CreateMany(ctx, timesheets)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}

// assembleInput loads everything the pure calculator needs: the period, the
// employee and dependents, the timesheets, and the configuration resolved as
// of the record's last timesheet date. Progressive-only configuration is only
// fetched for progressive records, so its hard-failure contract does not leak
// into flat-rate calculations.
func (s *Service) assembleInput(ctx context.Context, organizationID string, record payroll.PayrollRecord) (CalculationInput, error) {
	period, err := s.periodRepo.GetByID(ctx, record.PayrollPeriodID, organizationID)
	if err != nil {
		return CalculationInput{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID, organizationID)
	if err != nil {
		return CalculationInput{}, err
	}
	timesheets, err := s.timesheetRepo.ListByRecord(ctx, record.ID)
	if err != nil {
		return CalculationInput{}, err
	}
	asOf, err := AsOfDate(timesheets)
	if err != nil {
		return CalculationInput{}, err
	}

	input := CalculationInput{
		Employee:   emp,
		Period:     period,
		Record:     record,
		Timesheets: timesheets,
	}

	input.AllowanceRates, err = s.resolver.AllowanceRatesAt(ctx, organizationID, asOf)
	if err != nil {
		return CalculationInput{}, err
	}

	if employee.TaxType(record.TaxType) == employee.TaxTypeResidentProgressive {
		input.Dependents, err = s.employeeRepo.ListDependents(ctx, emp.ID)
		if err != nil {
			return CalculationInput{}, err
		}
		input.SelfDeduction, err = s.resolver.SelfDeductionAt(ctx, organizationID, asOf)
		if err != nil {
			return CalculationInput{}, err
		}
		input.DependentDeduction, err = s.resolver.DependentDeductionAt(ctx, organizationID, asOf)
		if err != nil {
			return CalculationInput{}, err
		}
		input.InsuranceGroup, err = s.resolver.InsuranceRateGroupAt(ctx, organizationID, asOf)
		if err != nil {
			return CalculationInput{}, err
		}
		input.TaxBrackets, err = s.resolver.TaxBracketsAt(ctx, organizationID, asOf)
		if err != nil {
			return CalculationInput{}, err
		}
		if err := ValidateBracketSet(input.TaxBrackets); err != nil {
			return CalculationInput{}, fmt.Errorf("income tax brackets misconfigured: %w", err)
		}
	}

	return input, nil
}

func buildPeriod(organizationID string, year, month, version int, policy workday.Policy, override *decimal.Decimal) payroll.PayrollPeriod {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	netWorkDays := workday.NetWorkDays(start, end, policy)
	if override != nil {
		netWorkDays = *override
	}

	return payroll.PayrollPeriod{
		OrganizationID: organizationID,
		Year:           year,
		Month:          month,
		Version:        version,
		StartDate:      start,
		EndDate:        end,
		NetWorkDays:    netWorkDays,
		WeekendPolicy:  policy,
	}
}

func toPeriodResponse(p payroll.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Year:           p.Year,
		Month:          p.Month,
		Version:        p.Version,
		StartDate:      p.StartDate.Format(dateLayout),
		EndDate:        p.EndDate.Format(dateLayout),
		NetWorkDays:    p.NetWorkDays,
		WeekendPolicy:  string(p.WeekendPolicy),
		IsClosed:       p.IsClosed,
	}
}

func toPeriodResponses(periods []payroll.PayrollPeriod) []payroll.PeriodResponse {
	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, toPeriodResponse(p))
	}
	return responses
}

func toRecordResponse(rec payroll.PayrollRecord) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:              rec.ID,
		PayrollPeriodID: rec.PayrollPeriodID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.EmployeeName,
		EmployeeCode:    rec.EmployeeCode,
		TaxType:         rec.TaxType,
		ActualWorkDays:  rec.ActualWorkDays,
		GrossIncome:     rec.GrossIncome,
		TotalDeduction:  rec.TotalDeduction,
		NetIncome:       rec.NetIncome,
		IsClosed:        rec.IsClosed,
	}
}

func toCalculationResponse(record payroll.PayrollRecord, period payroll.PayrollPeriod, emp employee.Employee, result CalculationResult) payroll.CalculationResponse {
	items := make([]payroll.ItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, payroll.ItemResponse{
			Name:   item.Name,
			Type:   string(item.Type),
			Amount: item.Amount,
		})
	}

	return payroll.CalculationResponse{
		PayrollRecordID:         record.ID,
		EmployeeID:              record.EmployeeID,
		TaxType:                 record.TaxType,
		AsOf:                    result.AsOf.Format(dateLayout),
		ActualWorkDays:          result.ActualWorkDays,
		NetWorkDays:             period.NetWorkDays,
		BaseSalary:              emp.BaseSalary,
		BaseSalaryActual:        result.BaseSalaryActual,
		TaxableAllowance:        result.TaxableAllowance,
		NontaxableAllowance:     result.NontaxableAllowance,
		NontaxableIncome:        result.NontaxableIncome,
		TaxableIncome:           result.TaxableIncome,
		SelfDeduction:           result.SelfDeduction,
		DependentCount:          result.DependentCount,
		DependentDeduction:      result.DependentDeduction,
		InsuranceDeduction:      result.InsuranceDeduction,
		InsuranceBreakdown:      result.InsuranceBreakdown,
		ExcludedTaxableIncome:   result.ExcludedTaxableIncome,
		CalculatedTaxableIncome: result.CalculatedTaxableIncome,
		IncomeTax:               result.IncomeTax,
		GrossIncome:             result.GrossIncome,
		TotalDeduction:          result.TotalDeduction,
		NetIncome:               result.NetIncome,
		Items:                   items,
	}
}
