package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"expense-api/auth"
)

type principalKey struct{}

// Verifier checks the value of an Authorization header.
type Verifier interface {
	VerifyHeader(header string) (auth.Principal, error)
}

// RequireUser rejects requests without a valid access token (401) and
// requests whose token subject differs from the {user_id} route variable (403).
func RequireUser(v Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := v.VerifyHeader(r.Header.Get("Authorization"))
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
				writeDetail(w, http.StatusUnauthorized, unauthorizedDetail(err))
				return
			}
			if userID, ok := mux.Vars(r)["user_id"]; ok && userID != p.UserID {
				writeDetail(w, http.StatusForbidden, "Access denied")
				return
			}
			ctx := context.WithValue(r.Context(), principalKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the identity stored by RequireUser.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}

func unauthorizedDetail(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingHeader):
		return "Authorization header is missing"
	case errors.Is(err, auth.ErrMalformed):
		return "Invalid authorization header format. Expected: Bearer <token>"
	case errors.Is(err, auth.ErrMissingSub):
		return "Token missing user ID"
	default:
		return "Invalid or expired token"
	}
}
