package middleware_http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"polluxkart-admin/internal/auth"
)

type claimsContextKey struct{}

// ClaimsFrom returns the token claims a guard stored on the request
// context, or nil outside guarded routes.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims
}

// Guard authenticates requests with a bearer token.
type Guard struct {
	secret string
}

func NewGuard(secret string) *Guard {
	return &Guard{secret: secret}
}

// RequireUser rejects requests without a valid bearer token.
func (g *Guard) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsContextKey{}, claims)))
	}
}

// RequireAdmin additionally rejects tokens without an admin role.
func (g *Guard) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		if !claims.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsContextKey{}, claims)))
	}
}

func (g *Guard) authenticate(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		writeAuthError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}

	claims, err := auth.ParseToken(g.secret, token)
	if err != nil {
		writeAuthError(w, http.StatusUnauthorized, "Could not validate credentials")
		return nil, false
	}
	return claims, true
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(status),
		"details": message,
	})
}
