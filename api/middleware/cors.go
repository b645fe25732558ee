package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/dmcneil/catalog-api/pkg/config"
)

// CORS returns middleware applying the configured allowed-origin policy.
// Credentialed requests need explicit origins, so there is no wildcard
// fallback.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
