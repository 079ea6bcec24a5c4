package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/transport/http/httperr"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ExtractToken pulls the bearer token from the Authorization header.
func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// Auth validates the bearer token and adds the verified claims to the
// request context. Requests without a valid token are rejected.
func Auth(jwt *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwt.Validate(tokenString)
			if err != nil {
				httperr.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose verified claims lack the administrator
// flag. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			httperr.WriteError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin {
			httperr.WriteError(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaims retrieves verified claims from the request context.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// WithClaims returns a context carrying the given claims, used by tests.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}
