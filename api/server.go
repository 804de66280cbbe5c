// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"vodsearch-api/api/middleware"
	"vodsearch-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	AuthSecret string // empty disables authentication
	RateLimit  int    // sustained requests per second per IP
	RateBurst  int    // burst per IP
}

// NewAPI creates and configures a new Huma API instance with middleware
func NewAPI(cfg APIConfig) (huma.API, chi.Router) {
	// Create Chi router
	router := chi.NewRouter()

	// Configure CORS (should be first middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// Panics become a plain 500 instead of killing the connection
	router.Use(chimiddleware.Recoverer)

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < cfg.RateLimit {
			burst = cfg.RateLimit
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit, burst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	// Auth runs last so rejections are logged and rate-limited too
	auth := middleware.NewAuthMiddleware(cfg.AuthSecret, cfg.Logger)
	router.Use(auth.Handler)

	// Create Huma API configuration
	config := huma.DefaultConfig("VOD Search API", "1.0.0")
	config.Info.Description = "Aggregated video search across MacCMS-style upstream sources"

	// Create Huma API with Chi adapter
	api := humachi.New(router, config)

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	return api, router
}
