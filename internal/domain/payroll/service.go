package payroll

import "context"

// PayrollService is the engine surface consumed by the API layer. The working
// organization is always an explicit parameter, never ambient state.
type PayrollService interface {
	InitPayrollByYear(ctx context.Context, organizationID string, req InitPayrollByYearRequest) (InitPayrollByYearResponse, error)
	CreatePayrollPeriod(ctx context.Context, organizationID string, req CreatePayrollPeriodRequest) (PeriodResponse, error)
	CreatePayrollRecords(ctx context.Context, organizationID string, req CreatePayrollRecordsRequest) ([]RecordResponse, error)
	UpdateTimesheets(ctx context.Context, organizationID string, req UpdateTimesheetsRequest) error
	GetPayrollRecordByID(ctx context.Context, organizationID string, recordID string) (CalculationResponse, error)
	ClosePayrollRecords(ctx context.Context, organizationID string, req ClosePayrollRecordsRequest) error
}
