package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) payroll.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	id, payroll_record_id, date, is_weekend, is_holiday, is_trip_day, leave_type, created_at, updated_at
`

func scanTimesheet(row pgx.Row) (payroll.Timesheet, error) {
	var ts payroll.Timesheet
	err := row.Scan(
		&ts.ID, &ts.PayrollRecordID, &ts.Date, &ts.IsWeekend, &ts.IsHoliday, &ts.IsTripDay,
		&ts.LeaveType, &ts.CreatedAt, &ts.UpdatedAt,
	)
	return ts, err
}

func (r *timesheetRepository) CreateMany(ctx context.Context, timesheets []payroll.Timesheet) ([]payroll.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (payroll_record_id, date, is_weekend, is_holiday, is_trip_day, leave_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + timesheetColumns

	created := make([]payroll.Timesheet, 0, len(timesheets))
	for _, ts := range timesheets {
		row, err := scanTimesheet(q.QueryRow(ctx, query,
			ts.PayrollRecordID, ts.Date, ts.IsWeekend, ts.IsHoliday, ts.IsTripDay, ts.LeaveType,
		))
		if err != nil {
			if strings.Contains(err.Error(), "uk_timesheet_record_date") {
				return nil, payroll.ErrTimesheetAlreadyExists
			}
			return nil, fmt.Errorf("failed to create timesheet: %w", err)
		}
		created = append(created, row)
	}

	return created, nil
}

func (r *timesheetRepository) ListByRecord(ctx context.Context, recordID string) ([]payroll.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE payroll_record_id = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []payroll.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return timesheets, nil
}

func (r *timesheetRepository) GetRecordState(ctx context.Context, timesheetID string, organizationID string) (string, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.is_closed
		FROM timesheets ts
		JOIN payroll_records pr ON pr.id = ts.payroll_record_id
		JOIN payroll_periods pp ON pp.id = pr.payroll_period_id
		WHERE ts.id = $1 AND pp.organization_id = $2
	`

	var recordID string
	var isClosed bool
	if err := q.QueryRow(ctx, query, timesheetID, organizationID).Scan(&recordID, &isClosed); err != nil {
		if err == pgx.ErrNoRows {
			return "", false, payroll.ErrTimesheetNotFound
		}
		return "", false, fmt.Errorf("failed to get timesheet record state: %w", err)
	}

	return recordID, isClosed, nil
}

// Update applies only the fields present in the request. Weekend flags are
// derived at generation time and never change afterward.
func (r *timesheetRepository) Update(ctx context.Context, req payroll.UpdateTimesheetRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET is_holiday = COALESCE($2, is_holiday),
			is_trip_day = COALESCE($3, is_trip_day),
			leave_type = COALESCE($4, leave_type),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, req.ID, req.IsHoliday, req.IsTripDay, req.LeaveType).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to update timesheet: %w", err)
	}

	return nil
}
