package payroll

import "context"

// PeriodRepository defines data access for payroll periods.
type PeriodRepository interface {
	CreateMany(ctx context.Context, periods []PayrollPeriod) ([]PayrollPeriod, error)
	GetByID(ctx context.Context, id string, organizationID string) (PayrollPeriod, error)
	NextVersion(ctx context.Context, organizationID string, year int) (int, error)
}

// RecordRepository defines data access for payroll records and their items.
type RecordRepository interface {
	CreateMany(ctx context.Context, records []PayrollRecord) ([]PayrollRecord, error)
	GetByID(ctx context.Context, id string, organizationID string) (PayrollRecord, error)
	ListByPeriod(ctx context.Context, periodID string) ([]PayrollRecord, error)
	UpdateTotals(ctx context.Context, record PayrollRecord) error
	Close(ctx context.Context, ids []string, organizationID string) (int64, error)

	CreateItems(ctx context.Context, items []PayrollItem) ([]PayrollItem, error)
	DeleteItemsByRecord(ctx context.Context, recordID string) error
}

// TimesheetRepository defines data access for per-day attendance rows.
type TimesheetRepository interface {
	CreateMany(ctx context.Context, timesheets []Timesheet) ([]Timesheet, error)
	ListByRecord(ctx context.Context, recordID string) ([]Timesheet, error)
	// GetRecordState returns the owning record's id and closed flag for a
	// timesheet, scoped to the organization.
	GetRecordState(ctx context.Context, timesheetID string, organizationID string) (recordID string, isClosed bool, err error)
	Update(ctx context.Context, req UpdateTimesheetRequest) error
}
