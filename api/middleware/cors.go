package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/dmatoso/checkpix-backend/pkg/config"
)

// CORS applies the storefront origin policy. Credentials stay allowed because
// the admin panel authenticates with cookies.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
