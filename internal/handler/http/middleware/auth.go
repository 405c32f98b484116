package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/veripay/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose token failed verification or expired.
// Runs after jwtauth.Verifier, which parses the token into the context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "Invalid or missing token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
