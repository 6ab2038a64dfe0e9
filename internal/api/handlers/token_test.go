// Tests run against a real TokenService with a bcrypt-hashed key, no mocking.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainauth "github.com/akansha-code/volumemcpserver/internal/domain/auth"
	pkgauth "github.com/akansha-code/volumemcpserver/pkg/auth"
)

const testAccessKey = "correct-horse-battery-staple"

func newTokenHandler(t *testing.T) *TokenHandler {
	t.Helper()
	hash, err := pkgauth.HashAccessKey(testAccessKey)
	if err != nil {
		t.Fatalf("HashAccessKey error = %v", err)
	}
	svc := domainauth.NewTokenService(hash, "test-secret-key-32-chars-min!!!", time.Hour,
		slog.New(slog.DiscardHandler))
	return NewTokenHandler(svc)
}

func postToken(t *testing.T, h *TokenHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.Token(rr, req)
	return rr
}

func TestToken_CorrectKey(t *testing.T) {
	t.Parallel()
	h := newTokenHandler(t)

	rr := postToken(t, h, `{"accessKey":"`+testAccessKey+`"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d (body: %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp TokenResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Token == "" {
		t.Error("response token is empty")
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Errorf("expiresAt %v is not in the future", resp.ExpiresAt)
	}
}

func TestToken_WrongKey(t *testing.T) {
	t.Parallel()
	h := newTokenHandler(t)

	rr := postToken(t, h, `{"accessKey":"wrong-key"}`)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusUnauthorized)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	if resp["error"] != "invalid access key" {
		t.Errorf("error = %q; want %q", resp["error"], "invalid access key")
	}
}

func TestToken_MissingKey(t *testing.T) {
	t.Parallel()
	h := newTokenHandler(t)

	rr := postToken(t, h, `{}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestToken_InvalidJSON(t *testing.T) {
	t.Parallel()
	h := newTokenHandler(t)

	rr := postToken(t, h, `{not json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestToken_IssuedTokenVerifies(t *testing.T) {
	t.Parallel()
	h := newTokenHandler(t)

	rr := postToken(t, h, `{"accessKey":"`+testAccessKey+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
	}
	var resp TokenResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	claims, err := pkgauth.ParseToken([]byte("test-secret-key-32-chars-min!!!"), resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.ID == "" {
		t.Error("issued token has no jti")
	}
}
