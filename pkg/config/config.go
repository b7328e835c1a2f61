// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, scraper, cache and rate limiting

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Fetcher strategy names accepted by ScraperConfig.Strategy.
const (
	StrategyHTTP    = "http"
	StrategyBrowser = "browser"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig

	// LogLevel is the logrus level name (debug/info/warn/error)
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// ScraperConfig holds pipeline configuration
type ScraperConfig struct {
	// Strategy selects the page fetcher implementation (http/browser)
	Strategy string

	// RequestDelay is the pause between consecutive page requests
	RequestDelay time.Duration

	// RequestTimeout bounds one page fetch or navigation
	RequestTimeout time.Duration

	// EarlyAbortThreshold stops a run after this many consecutive
	// failures; 0 disables early abort
	EarlyAbortThreshold int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// RateLimitConfig holds per-client request limiting configuration
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained allowance per client
	RequestsPerMinute int

	// Burst is the instantaneous allowance per client
	Burst int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Scraper: ScraperConfig{
			Strategy:            getEnvOrDefault("FETCHER_STRATEGY", StrategyHTTP),
			RequestDelay:        time.Duration(getEnvAsIntOrDefault("REQUEST_DELAY_MS", 2500)) * time.Millisecond,
			RequestTimeout:      time.Duration(getEnvAsIntOrDefault("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
			EarlyAbortThreshold: getEnvAsIntOrDefault("EARLY_ABORT_THRESHOLD", 3),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 3),
			Burst:             getEnvAsIntOrDefault("RATE_LIMIT_BURST", 1),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Scraper.Strategy != StrategyHTTP && c.Scraper.Strategy != StrategyBrowser {
		return errors.New("fetcher strategy must be 'http' or 'browser'")
	}

	if c.Scraper.RequestDelay < 0 {
		return errors.New("request delay cannot be negative")
	}

	if c.Scraper.RequestTimeout < time.Second {
		return errors.New("request timeout must be at least one second")
	}

	if c.Scraper.EarlyAbortThreshold < 0 {
		return errors.New("early abort threshold cannot be negative")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.RateLimit.RequestsPerMinute < 1 {
		return errors.New("rate limit must allow at least one request per minute")
	}

	return nil
}
