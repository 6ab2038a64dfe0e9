// Package auth provides bcrypt access-key hashing and JWT generation/verification
// for the HTTP transport. This is a leaf package with no domain dependencies.
//
// The model is a single shared access key: its bcrypt hash lives in the server
// config, clients exchange the raw key for a short-lived HS256 bearer token.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akansha-code/volumemcpserver/pkg/uuid"
)

// BCryptCost is the work factor for bcrypt. The key is verified once per token
// exchange, not per request, so a deliberate cost is affordable.
const BCryptCost = 12

// DefaultTokenTTL is the token lifetime used when the config does not set one.
const DefaultTokenTTL = 24 * time.Hour

// tokenSubject identifies what a token grants access to.
const tokenSubject = "volume-control"

// accessKeyBytes sizes generated access keys: 32 random bytes, 43 characters
// once base64-encoded.
const accessKeyBytes = 32

// GenerateAccessKey returns a fresh random access key in URL-safe base64.
// Store only its hash; hand the raw key to clients out of band.
func GenerateAccessKey() (string, error) {
	raw := make([]byte, accessKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate access key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashAccessKey hashes an access key for storage in the config file.
// The raw key is never stored anywhere.
func HashAccessKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access key: %w", err)
	}
	return string(hash), nil
}

// VerifyAccessKey reports whether key matches the stored bcrypt hash.
// Returns false (not an error) for malformed hashes so responses never
// leak whether the stored value looks like a hash at all.
func VerifyAccessKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// Claims carries the registered JWT claims; the subject is fixed to the
// volume-control scope and the ID is a UUIDv7 so tokens are individually
// identifiable in logs.
type Claims struct {
	jwt.RegisteredClaims
}

// NewToken mints a signed HS256 token valid for ttl (DefaultTokenTTL if
// ttl <= 0) and returns it with the claims it carries.
func NewToken(secret []byte, ttl time.Duration) (string, *Claims, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewV7().String(),
			Subject:   tokenSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// ParseToken validates a token string against secret and returns its claims.
// Rejects non-HMAC signing methods to prevent algorithm substitution.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims or signature")
	}
	if claims.Subject != tokenSubject {
		return nil, fmt.Errorf("unexpected token subject %q", claims.Subject)
	}

	return claims, nil
}
