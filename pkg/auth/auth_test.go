package auth

import (
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-key-32-chars-min!!!!")

// ===== ACCESS KEY TESTS =====

func TestGenerateAccessKey(t *testing.T) {
	t.Parallel()

	first, err := GenerateAccessKey()
	if err != nil {
		t.Fatalf("GenerateAccessKey() error = %v", err)
	}
	if len(first) < 40 {
		t.Fatalf("key %q too short; want ≥40 chars of base64", first)
	}
	if strings.ContainsAny(first, "+/=") {
		t.Errorf("key %q contains non-URL-safe characters", first)
	}

	second, err := GenerateAccessKey()
	if err != nil {
		t.Fatalf("GenerateAccessKey() error = %v", err)
	}
	if first == second {
		t.Error("two generated keys are identical")
	}
}

func TestHashAccessKey_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashAccessKey("swordfish")
	if err != nil {
		t.Fatalf("HashAccessKey() error = %v", err)
	}
	if hash == "swordfish" {
		t.Fatal("hash must not equal the raw key")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("hash = %q; want bcrypt format", hash)
	}

	if !VerifyAccessKey(hash, "swordfish") {
		t.Error("VerifyAccessKey() = false for the correct key")
	}
	if VerifyAccessKey(hash, "sWordfish") {
		t.Error("VerifyAccessKey() = true for a wrong key")
	}
}

func TestVerifyAccessKey_MalformedHash(t *testing.T) {
	t.Parallel()

	if VerifyAccessKey("not-a-bcrypt-hash", "anything") {
		t.Error("VerifyAccessKey() = true for a malformed hash; want false")
	}
	if VerifyAccessKey("", "anything") {
		t.Error("VerifyAccessKey() = true for an empty hash; want false")
	}
}

// ===== TOKEN TESTS =====

func TestNewToken_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	token, minted, err := NewToken(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}

	remaining := time.Until(minted.ExpiresAt.Time)
	if remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("ExpiresAt %v not ~1h away", minted.ExpiresAt.Time)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Subject != "volume-control" {
		t.Errorf("Subject = %q; want %q", claims.Subject, "volume-control")
	}
	if claims.ID == "" {
		t.Error("token ID (jti) is empty; want a UUIDv7")
	}
	if claims.ID != minted.ID {
		t.Errorf("parsed ID %q != minted ID %q", claims.ID, minted.ID)
	}
}

func TestNewToken_DefaultTTL(t *testing.T) {
	t.Parallel()

	_, minted, err := NewToken(testSecret, 0)
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}

	remaining := time.Until(minted.ExpiresAt.Time)
	if remaining < DefaultTokenTTL-time.Minute || remaining > DefaultTokenTTL {
		t.Fatalf("ExpiresAt %v not ~%v away", minted.ExpiresAt.Time, DefaultTokenTTL)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewToken(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}

	if _, err := ParseToken([]byte("a-completely-different-secret!!!"), token); err == nil {
		t.Error("ParseToken() with wrong secret succeeded; want error")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, _, err := NewToken(testSecret, time.Nanosecond)
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("ParseToken() on expired token succeeded; want error")
	}
}

func TestParseToken_GarbageInputs(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		if _, err := ParseToken(testSecret, tok); err == nil {
			t.Errorf("ParseToken(%q) succeeded; want error", tok)
		}
	}
}

func TestParseToken_TamperedPayload(t *testing.T) {
	t.Parallel()

	token, _, err := NewToken(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts; want 3", len(parts))
	}
	// Flip a character in the payload; signature check must fail.
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ParseToken(testSecret, tampered); err == nil {
		t.Error("ParseToken() on tampered token succeeded; want error")
	}
}
