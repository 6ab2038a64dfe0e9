// Package auth exchanges the configured access key for short-lived bearer
// tokens used by the HTTP transport. There are no user accounts: one shared
// key, hashed in the config file, gates token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	pkgauth "github.com/akansha-code/volumemcpserver/pkg/auth"
)

// ErrInvalidAccessKey is returned by Issue when the presented key does not
// match the configured hash. One error for every kind of mismatch, so
// responses never hint at what the stored credential looks like.
var ErrInvalidAccessKey = errors.New("invalid access key")

// Token is an issued bearer token.
type Token struct {
	// Value is the signed JWT the client presents as Authorization: Bearer.
	Value string
	// ID is the token's jti claim, the handle it appears under in logs.
	ID string
	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time
}

// TokenService verifies access keys and mints/verifies bearer tokens.
type TokenService struct {
	accessKeyHash string
	secret        []byte
	ttl           time.Duration
	logger        *slog.Logger
}

// NewTokenService builds a TokenService from the configured credential
// material. ttl <= 0 falls back to pkg/auth's default lifetime.
func NewTokenService(accessKeyHash, jwtSecret string, ttl time.Duration, logger *slog.Logger) *TokenService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TokenService{
		accessKeyHash: accessKeyHash,
		secret:        []byte(jwtSecret),
		ttl:           ttl,
		logger:        logger,
	}
}

// Issue verifies accessKey against the configured hash and mints a token.
func (s *TokenService) Issue(ctx context.Context, accessKey string) (*Token, error) {
	if !pkgauth.VerifyAccessKey(s.accessKeyHash, accessKey) {
		s.logger.WarnContext(ctx, "token request rejected", "reason", "access key mismatch")
		return nil, ErrInvalidAccessKey
	}

	value, claims, err := pkgauth.NewToken(s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	token := &Token{Value: value, ID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}
	s.logger.InfoContext(ctx, "access token issued", "token_id", token.ID, "expires_at", token.ExpiresAt)
	return token, nil
}

// Verify checks a presented bearer token and returns its claims.
// Satisfies the middleware's TokenVerifier contract.
func (s *TokenService) Verify(tokenString string) (*pkgauth.Claims, error) {
	return pkgauth.ParseToken(s.secret, tokenString)
}
