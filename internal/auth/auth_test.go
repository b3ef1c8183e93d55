// File path: internal/auth/auth_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager, err := NewManager("test-secret-please-rotate", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, err := manager.IssueToken("user-1", "tenant-1", "owner")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-1" || claims.TenantID != "tenant-1" || claims.Role != "owner" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenRejectedAcrossSecrets(t *testing.T) {
	issuer, _ := NewManager("secret-one-for-signing", time.Hour)
	verifier, _ := NewManager("secret-two-for-verifying", time.Hour)
	token, err := issuer.IssueToken("user-1", "tenant-1", "owner")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token verified with wrong secret")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	manager, _ := NewManager("test-secret-please-rotate", time.Nanosecond)
	token, err := manager.IssueToken("user-1", "tenant-1", "owner")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := manager.ParseToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong password entirely") {
		t.Fatal("wrong password accepted")
	}
	if _, err := HashPassword("short"); err == nil {
		t.Fatal("short password accepted")
	}
}

func TestMiddleware(t *testing.T) {
	manager, _ := NewManager("test-secret-please-rotate", time.Hour)
	var gotClaims *Claims
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok {
			t.Fatal("claims missing from context")
		}
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token not rejected: %d", rec.Code)
	}

	token, _ := manager.IssueToken("user-1", "tenant-1", "owner")
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token rejected: %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.TenantID != "tenant-1" {
		t.Fatalf("claims not propagated: %+v", gotClaims)
	}
}
