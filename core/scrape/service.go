// ABOUTME: Batch orchestrator that drives the fetch+extract loop across an article range
// ABOUTME: Handles sequencing, per-item error isolation, throttling, progress emission and early abort

package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brunch-scraper-api/core/domain"
	coreerrors "brunch-scraper-api/core/errors"
	"brunch-scraper-api/core/extract"
	"brunch-scraper-api/core/interfaces"
)

const (
	// DefaultRequestDelay is the fixed pause between consecutive page
	// requests. Serializing requests with this delay is the primary
	// defense against overloading the origin server.
	DefaultRequestDelay = 2500 * time.Millisecond

	// DefaultEarlyAbortThreshold stops a run after this many consecutive
	// failures. Zero disables early abort.
	DefaultEarlyAbortThreshold = 3

	// recordCacheTTL bounds how long extracted records are reused.
	recordCacheTTL = time.Hour
)

// Config tunes one orchestrator instance.
type Config struct {
	RequestDelay        time.Duration
	EarlyAbortThreshold int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		RequestDelay:        DefaultRequestDelay,
		EarlyAbortThreshold: DefaultEarlyAbortThreshold,
	}
}

// ProgressFunc receives progress events. It is invoked synchronously from
// the run loop; there are no concurrent producers.
type ProgressFunc func(domain.ProgressEvent)

// Service runs batch collection over a numeric article range. Processing
// is strictly sequential within a run; concurrent runs each own their own
// fetcher instance.
type Service struct {
	deps       interfaces.Dependencies
	newFetcher interfaces.FetcherFactory
	extractor  *extract.Extractor
	config     Config
}

// NewService creates a batch orchestrator.
func NewService(deps interfaces.Dependencies, newFetcher interfaces.FetcherFactory, config Config) *Service {
	if config.RequestDelay <= 0 {
		config.RequestDelay = DefaultRequestDelay
	}
	return &Service{
		deps:       deps,
		newFetcher: newFetcher,
		extractor:  extract.NewExtractor(deps.Logger),
		config:     config,
	}
}

// Run processes every article number in the request's range, appending one
// record per number. Per-item failures never abort the batch; only fetcher
// initialization failures do. A canceled context stops the run at the next
// suspension point and returns no result.
func (s *Service) Run(ctx context.Context, req *domain.ArticleRequest, onProgress ProgressFunc) (*domain.RunResult, error) {
	if onProgress == nil {
		onProgress = func(domain.ProgressEvent) {}
	}

	fetcher, err := s.newFetcher()
	if err != nil {
		fatal := &coreerrors.FatalError{Stage: "fetcher initialization", Err: err}
		s.logError("run aborted", map[string]interface{}{"error": fatal.Error()})
		return &domain.RunResult{Success: false, Error: fatal.Error()}, fatal
	}
	defer fetcher.Close()

	total := req.RangeSize()
	result := &domain.RunResult{
		Records: make([]domain.ArticleRecord, 0, total),
		Success: true,
	}

	processed := 0
	consecutiveFailures := 0

	for number := req.StartNumber; number <= req.EndNumber; number++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		url := fmt.Sprintf("%s/%d", req.BaseURL, number)

		onProgress(domain.ProgressEvent{
			Current: processed,
			Total:   total,
			URL:     url,
			Status:  fmt.Sprintf("processing article %d", number),
		})

		record := s.collectOne(ctx, fetcher, url, number)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result.Records = append(result.Records, record)
		processed++

		event := domain.ProgressEvent{
			Current: processed,
			Total:   total,
			URL:     url,
		}
		if record.Success {
			consecutiveFailures = 0
			event.Title = record.Title
			event.Status = fmt.Sprintf("collected article %d", number)
		} else {
			consecutiveFailures++
			result.SkippedURLs = append(result.SkippedURLs, url)
			event.Status = fmt.Sprintf("article %d skipped", number)
		}
		onProgress(event)

		if s.config.EarlyAbortThreshold > 0 && consecutiveFailures >= s.config.EarlyAbortThreshold {
			s.logWarn("stopping early after consecutive failures", map[string]interface{}{
				"failures":   consecutiveFailures,
				"lastNumber": number,
			})
			break
		}

		if number < req.EndNumber {
			if err := s.wait(ctx); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// collectOne fetches and extracts a single article. Any error becomes a
// success:false record carrying the error text as content; exceptions
// never escape the per-item boundary.
func (s *Service) collectOne(ctx context.Context, fetcher interfaces.Fetcher, url string, number int) domain.ArticleRecord {
	if cached, ok := s.cachedRecord(ctx, url); ok {
		return cached
	}

	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.ArticleRecord{
			URL:     url,
			Number:  number,
			Title:   extract.TitleSentinel,
			Content: err.Error(),
			Success: false,
		}
	}

	record := s.extractor.Extract(page, url)
	if record.Success {
		s.cacheRecord(ctx, url, record)
	}
	return record
}

// wait pauses between requests, honoring cancellation.
func (s *Service) wait(ctx context.Context) error {
	timer := time.NewTimer(s.config.RequestDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) cachedRecord(ctx context.Context, url string) (domain.ArticleRecord, bool) {
	if s.deps.Cache == nil {
		return domain.ArticleRecord{}, false
	}
	data, err := s.deps.Cache.Get(ctx, "article:"+url)
	if err != nil || data == nil {
		return domain.ArticleRecord{}, false
	}
	var record domain.ArticleRecord
	if err := json.Unmarshal(data, &record); err != nil || !record.Success {
		return domain.ArticleRecord{}, false
	}
	return record, true
}

func (s *Service) cacheRecord(ctx context.Context, url string, record domain.ArticleRecord) {
	if s.deps.Cache == nil {
		return
	}
	if data, err := json.Marshal(record); err == nil {
		_ = s.deps.Cache.Set(ctx, "article:"+url, data, recordCacheTTL)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

func (s *Service) logError(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, fields)
	}
}
