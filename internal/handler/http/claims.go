package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// getOrganizationID extracts the caller's organization from the verified JWT
// claims. Every service call takes the organization explicitly; this is the
// only place it is read from ambient request state.
func getOrganizationID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return organizationID, nil
}
