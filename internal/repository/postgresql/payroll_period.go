package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
)

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) payroll.PeriodRepository {
	return &periodRepository{db: db}
}

const periodColumns = `
	id, organization_id, year, month, version, start_date, end_date,
	net_work_days, weekend_policy, is_closed, created_at, updated_at
`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.Year, &p.Month, &p.Version, &p.StartDate, &p.EndDate,
		&p.NetWorkDays, &p.WeekendPolicy, &p.IsClosed, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *periodRepository) CreateMany(ctx context.Context, periods []payroll.PayrollPeriod) ([]payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (
			organization_id, year, month, version, start_date, end_date,
			net_work_days, weekend_policy, is_closed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + periodColumns

	created := make([]payroll.PayrollPeriod, 0, len(periods))
	for _, p := range periods {
		row, err := scanPeriod(q.QueryRow(ctx, query,
			p.OrganizationID, p.Year, p.Month, p.Version, p.StartDate, p.EndDate,
			p.NetWorkDays, p.WeekendPolicy, p.IsClosed,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to create payroll period %d-%02d: %w", p.Year, p.Month, err)
		}
		created = append(created, row)
	}

	return created, nil
}

func (r *periodRepository) GetByID(ctx context.Context, id string, organizationID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE id = $1 AND organization_id = $2
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

// NextVersion computes the next period version for the organization's year.
// Versions never decrease and are never reused, so repeated annual runs stack
// instead of clobbering earlier ones.
func (r *periodRepository) NextVersion(ctx context.Context, organizationID string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(MAX(version), 0) + 1
		FROM payroll_periods
		WHERE organization_id = $1 AND year = $2
	`

	var version int
	if err := q.QueryRow(ctx, query, organizationID, year).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to compute next period version: %w", err)
	}

	return version, nil
}
