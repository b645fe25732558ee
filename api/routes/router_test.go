package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmcneil/catalog-api/api/controllers"
	authsvc "github.com/dmcneil/catalog-api/internal/auth"
	categorysvc "github.com/dmcneil/catalog-api/internal/categories"
	productsvc "github.com/dmcneil/catalog-api/internal/products"
	"github.com/dmcneil/catalog-api/internal/users"
	pkgAuth "github.com/dmcneil/catalog-api/pkg/auth"
	"github.com/dmcneil/catalog-api/pkg/auth/session"
	"github.com/dmcneil/catalog-api/pkg/config"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubProductService struct{}

func (stubProductService) List(context.Context) ([]productsvc.ProductAggregateDTO, error) {
	return []productsvc.ProductAggregateDTO{}, nil
}

func (stubProductService) Get(context.Context, uint) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: 1}, nil
}

func (stubProductService) Create(context.Context, productsvc.CreateProductInput) (*productsvc.ProductAggregateDTO, error) {
	return &productsvc.ProductAggregateDTO{}, nil
}

func (stubProductService) Update(context.Context, uint, productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) Delete(context.Context, uint) error { return nil }

type stubCategoryService struct{ created bool }

func (s *stubCategoryService) List(context.Context) ([]categorysvc.CategoryDTO, error) {
	return []categorysvc.CategoryDTO{}, nil
}

func (s *stubCategoryService) Create(context.Context, categorysvc.CreateCategoryInput) (*categorysvc.CategoryDTO, error) {
	s.created = true
	return &categorysvc.CategoryDTO{ID: 1, Name: "Garden"}, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) CurrentUser(context.Context, uint) (*users.UserDTO, error) {
	return &users.UserDTO{ID: 1}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(context.Context, authsvc.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: 1}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "catalog-api",
			ExpirationMinutes: 30,
			CookieName:        "catalog_session",
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	sessions, err := session.NewManager(cfg.JWT)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return NewRouter(RouterParams{
		Config:          cfg,
		Sessions:        sessions,
		ReadyDeps:       map[string]controllers.Pinger{"db": stubPinger{}},
		ProductService:  stubProductService{},
		CategoryService: &stubCategoryService{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/products.json", "", http.StatusOK},
		{http.MethodPost, "/products.json", `{"name":"Chair","price":"400"}`, http.StatusCreated},
		{http.MethodGet, "/products/1.json", "", http.StatusOK},
		{http.MethodPatch, "/products/1.json", `{"quantity":2}`, http.StatusOK},
		{http.MethodDelete, "/products/1.json", "", http.StatusOK},
		{http.MethodGet, "/categories.json", "", http.StatusOK},
		{http.MethodPost, "/users", `{"name":"A","email":"a@example.com","password":"hunter2secret"}`, http.StatusCreated},
		{http.MethodDelete, "/sessions", "", http.StatusOK},
		{http.MethodGet, "/me", "", http.StatusUnauthorized},
		{http.MethodPost, "/categories.json", `{"name":"Garden"}`, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouterAdminGuardsCategoryCreate(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t)

	mint := func(admin bool) string {
		token, err := pkgAuth.MintSessionToken(cfg.JWT, time.Now(), pkgAuth.SessionTokenPayload{
			UserID: 1,
			Admin:  admin,
			JTI:    "jti",
		})
		if err != nil {
			t.Fatalf("mint token: %v", err)
		}
		return token
	}

	t.Run("nonAdmin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/categories.json", strings.NewReader(`{"name":"Garden"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: mint(false)})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/categories.json", strings.NewReader(`{"name":"Garden"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: mint(true)})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("readyFailure", func(t *testing.T) {
		sessions, err := session.NewManager(cfg.JWT)
		if err != nil {
			t.Fatalf("session manager: %v", err)
		}
		router := NewRouter(RouterParams{
			Config:          cfg,
			Sessions:        sessions,
			ReadyDeps:       map[string]controllers.Pinger{"db": stubPinger{err: fmt.Errorf("down")}},
			ProductService:  stubProductService{},
			CategoryService: &stubCategoryService{},
			AuthService:     stubAuthService{},
			RegisterService: stubRegisterService{},
		})

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
