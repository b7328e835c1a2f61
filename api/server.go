// ABOUTME: HTTP server assembly for the collection API
// ABOUTME: Wires routes, CORS, logging and rate limiting onto a chi router

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"brunch-scraper-api/api/handlers"
	"brunch-scraper-api/api/middleware"
	"brunch-scraper-api/core/interfaces"
	"brunch-scraper-api/core/textproc"
)

// ServiceName identifies this API in health responses and logs.
const ServiceName = "brunch-scraper-api"

// NewRouter builds the full middleware and route stack.
func NewRouter(runner handlers.ScrapeRunner, deps *interfaces.Dependencies, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestLoggingMiddleware(deps.Logger))

	scrapeHandler := handlers.NewScrapeHandler(runner, &textproc.Assembler{}, deps.Logger)

	r.Get("/health", handlers.HealthHandler(ServiceName))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(limiter))
		r.Method(http.MethodPost, "/scrape", scrapeHandler)
	})

	return r
}
