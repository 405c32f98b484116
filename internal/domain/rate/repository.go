package rate

import "context"

// Repository loads non-deleted configuration rows admissible for an
// organization (org-owned plus global). Temporal filtering happens in the
// resolver so that every lookup shares one predicate.
type Repository interface {
	ListAllowanceRates(ctx context.Context, organizationID string) ([]AllowanceRate, error)
	ListTaxBrackets(ctx context.Context, organizationID string) ([]IncomeTaxBracket, error)
	ListInsuranceRateGroups(ctx context.Context, organizationID string) ([]InsuranceRateGroup, error)
	ListSelfDeductionAmounts(ctx context.Context, organizationID string) ([]SelfDeductionAmount, error)
	ListDependentDeductionAmounts(ctx context.Context, organizationID string) ([]DependentDeductionAmount, error)
}
