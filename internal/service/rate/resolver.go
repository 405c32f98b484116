package rate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veripay/payroll-backend-go/internal/domain/rate"
)

// Resolver answers "what configuration was in force at time T for this
// organization". Rows are re-queried on every call; nothing is cached, so
// there is no invalidation problem at the cost of repeated reads. Scope and
// validity are both filtered here, whatever the repository returns.
type Resolver struct {
	rateRepo rate.Repository
}

func NewResolver(rateRepo rate.Repository) *Resolver {
	return &Resolver{rateRepo: rateRepo}
}

// AllowanceRatesAt returns every allowance rate active at the instant,
// org-specific and global rows alike. Multi-valued: downstream sums them.
func (r *Resolver) AllowanceRatesAt(ctx context.Context, organizationID string, at time.Time) ([]rate.AllowanceRate, error) {
	rows, err := r.rateRepo.ListAllowanceRates(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return rate.ActiveAt(rate.InScope(rows, organizationID), at), nil
}

// TaxBracketsAt returns the active progressive schedule ordered by bracket
// order ascending. The repository orders by the order column; this only
// filters the validity window.
func (r *Resolver) TaxBracketsAt(ctx context.Context, organizationID string, at time.Time) ([]rate.IncomeTaxBracket, error) {
	rows, err := r.rateRepo.ListTaxBrackets(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	active := rate.ActiveAt(rate.InScope(rows, organizationID), at)
	if len(active) == 0 {
		return nil, rate.ErrNoTaxBrackets
	}
	return active, nil
}

// SelfDeductionAt returns the single self-deduction amount active at the
// instant. Absence is a hard failure: a progressive-tax calculation cannot
// proceed without it.
func (r *Resolver) SelfDeductionAt(ctx context.Context, organizationID string, at time.Time) (decimal.Decimal, error) {
	rows, err := r.rateRepo.ListSelfDeductionAmounts(ctx, organizationID)
	if err != nil {
		return decimal.Zero, err
	}
	active := rate.ActiveAt(rate.InScope(rows, organizationID), at)
	if len(active) == 0 {
		return decimal.Zero, rate.ErrSelfDeductionNotFound
	}
	// First by effective date ascending. Org-specific rows get no precedence
	// over global ones; see DESIGN.md.
	rate.SortByEffectiveDate(active)
	return active[0].Amount, nil
}

// DependentDeductionAt returns the single per-dependent deduction amount
// active at the instant. Absence is a hard failure.
func (r *Resolver) DependentDeductionAt(ctx context.Context, organizationID string, at time.Time) (decimal.Decimal, error) {
	rows, err := r.rateRepo.ListDependentDeductionAmounts(ctx, organizationID)
	if err != nil {
		return decimal.Zero, err
	}
	active := rate.ActiveAt(rate.InScope(rows, organizationID), at)
	if len(active) == 0 {
		return decimal.Zero, rate.ErrDependentDeductionNotFound
	}
	rate.SortByEffectiveDate(active)
	return active[0].Amount, nil
}

// InsuranceRateGroupAt returns the insurance rate group active at the
// instant, or nil when none applies. Absence is a soft result, not an error.
func (r *Resolver) InsuranceRateGroupAt(ctx context.Context, organizationID string, at time.Time) (*rate.InsuranceRateGroup, error) {
	rows, err := r.rateRepo.ListInsuranceRateGroups(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	active := rate.ActiveAt(rate.InScope(rows, organizationID), at)
	if len(active) == 0 {
		return nil, nil
	}
	rate.SortByEffectiveDate(active)
	return &active[0], nil
}
