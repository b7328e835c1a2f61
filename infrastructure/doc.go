// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as page fetching, caching, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - fetcher/httpfetch: Plain HTTP fetcher with a crawler user agent
// - fetcher/browser: Headless Chrome fetcher built on chromedp
// - cache/memory: In-memory cache backed by patrickmn/go-cache
// - cache/redis: Redis-based cache implementation
// - logger/logrus: Structured JSON logger built on logrus
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts and error handling
//
// # Fetcher Implementations
//
// HTTP fetcher example:
//
//	fetcher := httpfetch.NewClient(30 * time.Second)
//	page, err := fetcher.Fetch(ctx, "https://brunch.co.kr/@author/12")
//
// Browser fetcher example:
//
//	fetcher, err := browser.NewClient(browser.DefaultOptions())
//	if err != nil {
//	    // Chrome could not be launched; the run cannot start
//	}
//	defer fetcher.Close()
//
// # Cache Implementations
//
// Memory cache example:
//
//	cache := memory.NewMemoryCache(time.Hour)
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis cache example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.NewLogger("info")
//	logger.Info("article collected", map[string]interface{}{
//	    "url":    "https://brunch.co.kr/@author/12",
//	    "number": 12,
//	})
package infrastructure
