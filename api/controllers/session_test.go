package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmcneil/catalog-api/api/middleware"
	authsvc "github.com/dmcneil/catalog-api/internal/auth"
	"github.com/dmcneil/catalog-api/internal/users"
	"github.com/dmcneil/catalog-api/pkg/auth/session"
	"github.com/dmcneil/catalog-api/pkg/config"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
)

var testSessionCfg = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "catalog-api",
	ExpirationMinutes: 30,
	CookieName:        "catalog_session",
}

type stubAuthService struct {
	loginResp *authsvc.LoginResponse
	user      *users.UserDTO
	err       error
}

func (s *stubAuthService) Login(context.Context, authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return s.loginResp, s.err
}

func (s *stubAuthService) CurrentUser(context.Context, uint) (*users.UserDTO, error) {
	return s.user, s.err
}

func newSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(testSessionCfg)
	if err != nil {
		t.Fatalf("new session manager: %v", err)
	}
	return mgr
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testSessionCfg.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookie(t *testing.T) {
	svc := &stubAuthService{loginResp: &authsvc.LoginResponse{
		Token: "minted-token",
		User:  users.UserDTO{ID: 1, Name: "Alice", Email: "alice@example.com"},
	}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(
		`{"email":"alice@example.com","password":"hunter2secret"}`,
	))
	req.Header.Set("Content-Type", "application/json")

	Login(svc, newSessionManager(t), nil).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	cookie := sessionCookie(t, w)
	if cookie == nil || cookie.Value != "minted-token" {
		t.Fatalf("expected session cookie with token, got %v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}

	var envelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Email != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", envelope.Data)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(
		`{"email":"nobody@example.com","password":"wrong-password"}`,
	))
	req.Header.Set("Content-Type", "application/json")

	Login(svc, newSessionManager(t), nil).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if cookie := sessionCookie(t, w); cookie != nil {
		t.Fatalf("expected no session cookie, got %v", cookie)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)

	Logout(newSessionManager(t), nil).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired empty cookie, got %v", cookie)
	}
}

func TestMe(t *testing.T) {
	t.Run("withSession", func(t *testing.T) {
		svc := &stubAuthService{user: &users.UserDTO{ID: 7, Name: "Alice"}}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))

		Me(svc, nil).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("withoutSession", func(t *testing.T) {
		svc := &stubAuthService{}
		w := httptest.NewRecorder()

		Me(svc, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
