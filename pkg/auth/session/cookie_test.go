package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcneil/catalog-api/pkg/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.JWTConfig{
		Secret:            "secret",
		Issuer:            "issuer",
		ExpirationMinutes: 60,
		CookieName:        "catalog_session",
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestIssueAndReadCookie(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	m.Issue(rec, "token-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "catalog_session" || cookie.Value != "token-value" {
		t.Fatalf("unexpected cookie %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("expected positive max-age, got %d", cookie.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	token, err := m.Read(req)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if token != "token-value" {
		t.Fatalf("expected token-value, got %q", token)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Fatalf("expected negative max-age, got %d", cookies[0].MaxAge)
	}
}

func TestReadWithoutCookie(t *testing.T) {
	m := testManager(t)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if _, err := m.Read(req); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(config.JWTConfig{ExpirationMinutes: 60}); err == nil {
		t.Fatal("expected error for missing cookie name")
	}
	if _, err := NewManager(config.JWTConfig{CookieName: "c"}); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
