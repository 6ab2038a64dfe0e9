// Package middleware carries the HTTP middleware for the streamable
// transport: bearer token auth and request auditing.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/akansha-code/volumemcpserver/internal/api/ctxkeys"
	pkgauth "github.com/akansha-code/volumemcpserver/pkg/auth"
)

// TokenVerifier is the minimal contract Auth needs. domain/auth.TokenService
// satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*pkgauth.Claims, error)
}

// Auth validates the Bearer token and injects its jti into the context.
// Rejected requests get a 401 before any tool call is read.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				writeUnauthorized(w, "missing or invalid Authorization header")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := ctxkeys.WithValue(r.Context(), ctxkeys.TokenID, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
// Returns empty string if the header is missing, has the wrong scheme, or
// carries no token.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	// Case-sensitive per RFC 7235.
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// writeUnauthorized writes a 401 JSON response in the same shape the token
// handler uses for its errors.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
