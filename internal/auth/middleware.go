package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ms-parcels/internal/logger"
	"ms-parcels/internal/models"
	"ms-parcels/internal/utils"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireOwner guards owner-scoped endpoints. A missing or malformed
// credential is Unauthorized; a credential that is present but invalid,
// or whose principal does not match the email scope parameter, is
// Forbidden. The wrapped handler never runs on a rejection.
func RequireOwner(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				if log != nil {
					log.LogSecurity("UNAUTHORIZED", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
				}
				utils.WriteError(w, http.StatusUnauthorized, "unauthorized access", err)
				return
			}

			principal, err := verifier.Verify(r.Context(), rawToken)
			if err != nil {
				if log != nil {
					log.LogSecurity("FORBIDDEN", fmt.Sprintf("%s %s: token verification failed", r.Method, r.URL.Path))
				}
				utils.WriteError(w, http.StatusForbidden, "forbidden access", ErrInvalidToken)
				return
			}

			if scope := r.URL.Query().Get("email"); principal.Email != scope {
				if log != nil {
					log.LogSecurity("FORBIDDEN", fmt.Sprintf("%s %s: identity mismatch", r.Method, r.URL.Path))
				}
				utils.WriteError(w, http.StatusForbidden, "forbidden access", errors.New("identity mismatch"))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the verified principal attached by
// RequireOwner.
func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*models.Principal)
	return p, ok
}
