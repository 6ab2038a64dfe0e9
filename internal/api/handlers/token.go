// Package handlers translates HTTP requests into domain service calls and
// maps domain errors to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	domainauth "github.com/akansha-code/volumemcpserver/internal/domain/auth"
)

// TokenHandler exchanges the configured access key for a bearer token.
type TokenHandler struct {
	tokens *domainauth.TokenService
}

// NewTokenHandler creates a TokenHandler backed by the provided service.
func NewTokenHandler(tokens *domainauth.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// TokenRequest is the request body for POST /auth/token.
type TokenRequest struct {
	AccessKey string `json:"accessKey"`
}

// TokenResponse is the response body returned after a successful exchange.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Token handles POST /auth/token.
//
// Response codes:
//   - 200 OK: exchange successful
//   - 400 Bad Request: invalid JSON or missing accessKey
//   - 401 Unauthorized: wrong access key (generic, reveals nothing)
//   - 500 Internal Server Error: unexpected failure
func (h *TokenHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccessKey == "" {
		writeError(w, http.StatusBadRequest, "accessKey is required")
		return
	}

	token, err := h.tokens.Issue(r.Context(), req.AccessKey)
	if err != nil {
		if errors.Is(err, domainauth.ErrInvalidAccessKey) {
			writeError(w, http.StatusUnauthorized, "invalid access key")
			return
		}
		writeError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TokenResponse{ //nolint:errcheck
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}
