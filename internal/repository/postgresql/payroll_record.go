package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) payroll.RecordRepository {
	return &recordRepository{db: db}
}

const recordColumns = `
	pr.id, pr.payroll_period_id, pr.employee_id, pr.tax_type, pr.actual_work_days,
	pr.gross_income, pr.total_deduction, pr.net_income, pr.is_closed, pr.created_at, pr.updated_at
`

func scanRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.PayrollPeriodID, &rec.EmployeeID, &rec.TaxType, &rec.ActualWorkDays,
		&rec.GrossIncome, &rec.TotalDeduction, &rec.NetIncome, &rec.IsClosed, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *recordRepository) CreateMany(ctx context.Context, records []payroll.PayrollRecord) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			payroll_period_id, employee_id, tax_type, actual_work_days,
			gross_income, total_deduction, net_income, is_closed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, payroll_period_id, employee_id, tax_type, actual_work_days,
			gross_income, total_deduction, net_income, is_closed, created_at, updated_at
	`

	created := make([]payroll.PayrollRecord, 0, len(records))
	for _, rec := range records {
		row, err := scanRecord(q.QueryRow(ctx, query,
			rec.PayrollPeriodID, rec.EmployeeID, rec.TaxType, rec.ActualWorkDays,
			rec.GrossIncome, rec.TotalDeduction, rec.NetIncome, rec.IsClosed,
		))
		if err != nil {
			if strings.Contains(err.Error(), "uk_payroll_record_employee_period") {
				return nil, payroll.ErrRecordAlreadyExists
			}
			return nil, fmt.Errorf("failed to create payroll record: %w", err)
		}
		created = append(created, row)
	}

	return created, nil
}

func (r *recordRepository) GetByID(ctx context.Context, id string, organizationID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `, e.full_name, e.employee_code
		FROM payroll_records pr
		JOIN payroll_periods pp ON pp.id = pr.payroll_period_id
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1 AND pp.organization_id = $2
	`

	var rec payroll.PayrollRecord
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&rec.ID, &rec.PayrollPeriodID, &rec.EmployeeID, &rec.TaxType, &rec.ActualWorkDays,
		&rec.GrossIncome, &rec.TotalDeduction, &rec.NetIncome, &rec.IsClosed, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *recordRepository) ListByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `, e.full_name, e.employee_code
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.payroll_period_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.PayrollPeriodID, &rec.EmployeeID, &rec.TaxType, &rec.ActualWorkDays,
			&rec.GrossIncome, &rec.TotalDeduction, &rec.NetIncome, &rec.IsClosed, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func (r *recordRepository) UpdateTotals(ctx context.Context, record payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET actual_work_days = $2, gross_income = $3, total_deduction = $4,
			net_income = $5, updated_at = NOW()
		WHERE id = $1 AND is_closed = false
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ID, record.ActualWorkDays, record.GrossIncome, record.TotalDeduction, record.NetIncome,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRecordClosed
		}
		return fmt.Errorf("failed to update payroll record totals: %w", err)
	}

	return nil
}

// Close marks records closed and returns how many rows changed. Already-closed
// records are left untouched so callers can detect partial matches.
func (r *recordRepository) Close(ctx context.Context, ids []string, organizationID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records pr
		SET is_closed = true, updated_at = NOW()
		FROM payroll_periods pp
		WHERE pr.payroll_period_id = pp.id
			AND pr.id = ANY($1)
			AND pp.organization_id = $2
			AND pr.is_closed = false
	`

	tag, err := q.Exec(ctx, query, ids, organizationID)
	if err != nil {
		return 0, fmt.Errorf("failed to close payroll records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *recordRepository) CreateItems(ctx context.Context, items []payroll.PayrollItem) ([]payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_items (payroll_record_id, name, type, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, payroll_record_id, name, type, amount, created_at, updated_at
	`

	created := make([]payroll.PayrollItem, 0, len(items))
	for _, item := range items {
		var it payroll.PayrollItem
		err := q.QueryRow(ctx, query,
			item.PayrollRecordID, item.Name, item.Type, item.Amount,
		).Scan(
			&it.ID, &it.PayrollRecordID, &it.Name, &it.Type, &it.Amount, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create payroll item: %w", err)
		}
		created = append(created, it)
	}

	return created, nil
}

func (r *recordRepository) DeleteItemsByRecord(ctx context.Context, recordID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_items WHERE payroll_record_id = $1`, recordID); err != nil {
		return fmt.Errorf("failed to delete payroll items: %w", err)
	}

	return nil
}
