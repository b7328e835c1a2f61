// ABOUTME: Main entry point for the brunch article collection API server
// ABOUTME: Wires configuration, cache, fetcher strategy and HTTP server together

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brunch-scraper-api/api"
	"brunch-scraper-api/api/middleware"
	"brunch-scraper-api/core/interfaces"
	"brunch-scraper-api/core/scrape"
	"brunch-scraper-api/infrastructure/cache/memory"
	"brunch-scraper-api/infrastructure/cache/redis"
	"brunch-scraper-api/infrastructure/fetcher/browser"
	"brunch-scraper-api/infrastructure/fetcher/httpfetch"
	logruslogger "brunch-scraper-api/infrastructure/logger/logrus"
	"brunch-scraper-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(cfg.LogLevel)
	logger.Info("Starting brunch scraper API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"strategy":   cfg.Scraper.Strategy,
		"cache_type": cfg.Cache.Type,
	})

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	deps := interfaces.Dependencies{
		Cache:  cache,
		Logger: logger,
	}

	// Each run owns its fetcher, so the factory is built once and the
	// strategy decides what it produces.
	var newFetcher interfaces.FetcherFactory
	switch cfg.Scraper.Strategy {
	case config.StrategyBrowser:
		newFetcher = func() (interfaces.Fetcher, error) {
			return browser.NewClient(browser.DefaultOptions())
		}
	default:
		timeout := cfg.Scraper.RequestTimeout
		newFetcher = func() (interfaces.Fetcher, error) {
			return httpfetch.NewClient(timeout), nil
		}
	}

	service := scrape.NewService(deps, newFetcher, scrape.Config{
		RequestDelay:        cfg.Scraper.RequestDelay,
		EarlyAbortThreshold: cfg.Scraper.EarlyAbortThreshold,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	stopEviction := make(chan struct{})
	limiter.StartEviction(stopEviction)

	router := api.NewRouter(service, &deps, limiter)

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// A full 50-article run with the default delay takes minutes, and
		// the response streams the whole time.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)
	close(stopEviction)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
