package postgresql

import (
	"context"
	"fmt"

	"github.com/veripay/payroll-backend-go/internal/domain/rate"
	"github.com/veripay/payroll-backend-go/internal/pkg/database"
)

type rateRepository struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) rate.Repository {
	return &rateRepository{db: db}
}

// Every list returns org-owned plus global (NULL organization_id) rows, soft
// deletes excluded. Temporal filtering happens in the resolver.

func (r *rateRepository) ListAllowanceRates(ctx context.Context, organizationID string) ([]rate.AllowanceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, amount, is_taxable, effective_date, end_date,
			created_at, updated_at, deleted_at
		FROM allowance_rates
		WHERE (organization_id = $1 OR organization_id IS NULL) AND deleted_at IS NULL
		ORDER BY effective_date
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowance rates: %w", err)
	}
	defer rows.Close()

	var rates []rate.AllowanceRate
	for rows.Next() {
		var ar rate.AllowanceRate
		if err := rows.Scan(
			&ar.ID, &ar.OrganizationID, &ar.Name, &ar.Amount, &ar.IsTaxable, &ar.EffectiveDate, &ar.EndDate,
			&ar.CreatedAt, &ar.UpdatedAt, &ar.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan allowance rate: %w", err)
		}
		rates = append(rates, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allowance rates: %w", err)
	}

	return rates, nil
}

func (r *rateRepository) ListTaxBrackets(ctx context.Context, organizationID string) ([]rate.IncomeTaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, bracket_group, bracket_order, min_amount, max_amount, tax_rate,
			effective_date, end_date, created_at, updated_at, deleted_at
		FROM income_tax_brackets
		WHERE (organization_id = $1 OR organization_id IS NULL) AND deleted_at IS NULL
		ORDER BY bracket_group, bracket_order
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income tax brackets: %w", err)
	}
	defer rows.Close()

	var brackets []rate.IncomeTaxBracket
	for rows.Next() {
		var b rate.IncomeTaxBracket
		if err := rows.Scan(
			&b.ID, &b.OrganizationID, &b.BracketGroup, &b.Order, &b.Min, &b.Max, &b.TaxRate,
			&b.EffectiveDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income tax bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income tax brackets: %w", err)
	}

	return brackets, nil
}

func (r *rateRepository) ListInsuranceRateGroups(ctx context.Context, organizationID string) ([]rate.InsuranceRateGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, effective_date, end_date, created_at, updated_at, deleted_at
		FROM insurance_rate_groups
		WHERE (organization_id = $1 OR organization_id IS NULL) AND deleted_at IS NULL
		ORDER BY effective_date
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance rate groups: %w", err)
	}
	defer rows.Close()

	var groups []rate.InsuranceRateGroup
	for rows.Next() {
		var g rate.InsuranceRateGroup
		if err := rows.Scan(
			&g.ID, &g.OrganizationID, &g.Name, &g.EffectiveDate, &g.EndDate,
			&g.CreatedAt, &g.UpdatedAt, &g.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan insurance rate group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insurance rate groups: %w", err)
	}

	for i := range groups {
		rates, err := r.listInsuranceRates(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Rates = rates
	}

	return groups, nil
}

func (r *rateRepository) listInsuranceRates(ctx context.Context, groupID string) ([]rate.InsuranceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, insurance_rate_group_id, name, rate, is_employee_paid, created_at, updated_at
		FROM insurance_rates
		WHERE insurance_rate_group_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance rates: %w", err)
	}
	defer rows.Close()

	var rates []rate.InsuranceRate
	for rows.Next() {
		var ir rate.InsuranceRate
		if err := rows.Scan(
			&ir.ID, &ir.InsuranceRateGroupID, &ir.Name, &ir.Rate, &ir.IsEmployeePaid, &ir.CreatedAt, &ir.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan insurance rate: %w", err)
		}
		rates = append(rates, ir)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insurance rates: %w", err)
	}

	return rates, nil
}

func (r *rateRepository) ListSelfDeductionAmounts(ctx context.Context, organizationID string) ([]rate.SelfDeductionAmount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, amount, effective_date, end_date, created_at, updated_at, deleted_at
		FROM self_deduction_amounts
		WHERE (organization_id = $1 OR organization_id IS NULL) AND deleted_at IS NULL
		ORDER BY effective_date
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list self deduction amounts: %w", err)
	}
	defer rows.Close()

	var amounts []rate.SelfDeductionAmount
	for rows.Next() {
		var a rate.SelfDeductionAmount
		if err := rows.Scan(
			&a.ID, &a.OrganizationID, &a.Amount, &a.EffectiveDate, &a.EndDate,
			&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan self deduction amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate self deduction amounts: %w", err)
	}

	return amounts, nil
}

func (r *rateRepository) ListDependentDeductionAmounts(ctx context.Context, organizationID string) ([]rate.DependentDeductionAmount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, amount, effective_date, end_date, created_at, updated_at, deleted_at
		FROM dependent_deduction_amounts
		WHERE (organization_id = $1 OR organization_id IS NULL) AND deleted_at IS NULL
		ORDER BY effective_date
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependent deduction amounts: %w", err)
	}
	defer rows.Close()

	var amounts []rate.DependentDeductionAmount
	for rows.Next() {
		var a rate.DependentDeductionAmount
		if err := rows.Scan(
			&a.ID, &a.OrganizationID, &a.Amount, &a.EffectiveDate, &a.EndDate,
			&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dependent deduction amount: %w", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dependent deduction amounts: %w", err)
	}

	return amounts, nil
}
