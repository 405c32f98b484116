package rate

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veripay/payroll-backend-go/internal/domain/rate"
)

type stubRateRepo struct {
	allowances          []rate.AllowanceRate
	brackets            []rate.IncomeTaxBracket
	insuranceGroups     []rate.InsuranceRateGroup
	selfDeductions      []rate.SelfDeductionAmount
	dependentDeductions []rate.DependentDeductionAmount
}

// The stub returns rows unfiltered; scoping is the resolver's job.

func (s *stubRateRepo) ListAllowanceRates(ctx context.Context, orgID string) ([]rate.AllowanceRate, error) {
	return s.allowances, nil
}

func (s *stubRateRepo) ListTaxBrackets(ctx context.Context, orgID string) ([]rate.IncomeTaxBracket, error) {
	return s.brackets, nil
}

func (s *stubRateRepo) ListInsuranceRateGroups(ctx context.Context, orgID string) ([]rate.InsuranceRateGroup, error) {
	return s.insuranceGroups, nil
}

func (s *stubRateRepo) ListSelfDeductionAmounts(ctx context.Context, orgID string) ([]rate.SelfDeductionAmount, error) {
	return s.selfDeductions, nil
}

func (s *stubRateRepo) ListDependentDeductionAmounts(ctx context.Context, orgID string) ([]rate.DependentDeductionAmount, error) {
	return s.dependentDeductions, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrStr(s string) *string        { return &s }

func TestResolver_AllowanceRatesAt_ReturnsAllActive(t *testing.T) {
	t.Parallel()

	repo := &stubRateRepo{allowances: []rate.AllowanceRate{
		{Name: "meal", IsTaxable: true, EffectiveDate: day(2024, time.January, 1)},
		{Name: "transport", IsTaxable: false, EffectiveDate: day(2024, time.January, 1)},
		{Name: "expired", EffectiveDate: day(2023, time.January, 1), EndDate: ptrTime(day(2023, time.December, 31))},
	}}
	resolver := NewResolver(repo)

	rates, err := resolver.AllowanceRatesAt(context.Background(), "org-1", day(2024, time.June, 30))
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestResolver_SelfDeductionAt_FirstByEffectiveDate(t *testing.T) {
	t.Parallel()

	repo := &stubRateRepo{selfDeductions: []rate.SelfDeductionAmount{
		{Amount: decimal.NewFromInt(11000000), EffectiveDate: day(2023, time.July, 1)},
		{Amount: decimal.NewFromInt(9000000), EffectiveDate: day(2020, time.January, 1)},
	}}
	resolver := NewResolver(repo)

	amount, err := resolver.SelfDeductionAt(context.Background(), "org-1", day(2024, time.January, 31))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(9000000)), "got %s", amount)
}

func TestResolver_SelfDeductionAt_AbsenceIsHardFailure(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(&stubRateRepo{})

	_, err := resolver.SelfDeductionAt(context.Background(), "org-1", day(2024, time.January, 31))
	assert.ErrorIs(t, err, rate.ErrSelfDeductionNotFound)
}

func TestResolver_DependentDeductionAt_AbsenceIsHardFailure(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(&stubRateRepo{})

	_, err := resolver.DependentDeductionAt(context.Background(), "org-1", day(2024, time.January, 31))
	assert.ErrorIs(t, err, rate.ErrDependentDeductionNotFound)
}

func TestResolver_InsuranceRateGroupAt_AbsenceIsSoft(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(&stubRateRepo{})

	group, err := resolver.InsuranceRateGroupAt(context.Background(), "org-1", day(2024, time.January, 31))
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestResolver_TaxBracketsAt_AbsenceIsHardFailure(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(&stubRateRepo{})

	_, err := resolver.TaxBracketsAt(context.Background(), "org-1", day(2024, time.January, 31))
	assert.ErrorIs(t, err, rate.ErrNoTaxBrackets)
}

func TestResolver_ExcludesOtherOrgRows(t *testing.T) {
	t.Parallel()

	repo := &stubRateRepo{selfDeductions: []rate.SelfDeductionAmount{
		{Amount: decimal.NewFromInt(9000000), OrganizationID: ptrStr("org-2"), EffectiveDate: day(2020, time.January, 1)},
	}}
	resolver := NewResolver(repo)

	// Another organization's row never leaks in, even when the repository
	// hands it back.
	_, err := resolver.SelfDeductionAt(context.Background(), "org-1", day(2024, time.January, 31))
	assert.ErrorIs(t, err, rate.ErrSelfDeductionNotFound)
}

func TestResolver_GlobalRowsAdmissible(t *testing.T) {
	t.Parallel()

	repo := &stubRateRepo{selfDeductions: []rate.SelfDeductionAmount{
		{Amount: decimal.NewFromInt(5000000), OrganizationID: nil, EffectiveDate: day(2020, time.January, 1)},
		{Amount: decimal.NewFromInt(7000000), OrganizationID: ptrStr("org-1"), EffectiveDate: day(2022, time.January, 1)},
	}}
	resolver := NewResolver(repo)

	// Both rows are active; the global one wins on effective date, with no
	// specific-over-global precedence.
	amount, err := resolver.SelfDeductionAt(context.Background(), "org-1", day(2024, time.January, 31))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(5000000)), "got %s", amount)
}
