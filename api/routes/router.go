package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmcneil/catalog-api/api/controllers"
	"github.com/dmcneil/catalog-api/api/middleware"
	authsvc "github.com/dmcneil/catalog-api/internal/auth"
	categorysvc "github.com/dmcneil/catalog-api/internal/categories"
	productsvc "github.com/dmcneil/catalog-api/internal/products"
	"github.com/dmcneil/catalog-api/pkg/auth/session"
	"github.com/dmcneil/catalog-api/pkg/config"
	"github.com/dmcneil/catalog-api/pkg/logger"
	"github.com/dmcneil/catalog-api/pkg/metrics"
	"github.com/dmcneil/catalog-api/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	Sessions        *session.Manager
	Redis           *redis.Client
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	ReadyDeps       map[string]controllers.Pinger
	ProductService  productsvc.Service
	CategoryService categorysvc.Service
	AuthService     authsvc.Service
	RegisterService authsvc.RegisterService
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.ReadyDeps))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Get("/products.json", controllers.ListProducts(p.ProductService, logg))
	r.Post("/products.json", controllers.CreateProduct(p.ProductService, logg))
	r.Get("/products/{id}.json", controllers.GetProduct(p.ProductService, logg))
	r.Patch("/products/{id}.json", controllers.UpdateProduct(p.ProductService, logg))
	r.Delete("/products/{id}.json", controllers.DeleteProduct(p.ProductService, logg))

	r.Get("/categories.json", controllers.ListCategories(p.CategoryService, logg))
	r.With(
		middleware.Auth(cfg.JWT, p.Sessions, logg),
		middleware.RequireAdmin(logg),
	).Post("/categories.json", controllers.CreateCategory(p.CategoryService, logg))

	r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
		Post("/users", controllers.Register(p.RegisterService, logg))

	r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
		Post("/sessions", controllers.Login(p.AuthService, p.Sessions, logg))
	r.Delete("/sessions", controllers.Logout(p.Sessions, logg))

	r.With(middleware.Auth(cfg.JWT, p.Sessions, logg)).
		Get("/me", controllers.Me(p.AuthService, logg))

	return r
}
