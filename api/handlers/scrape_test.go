package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brunch-scraper-api/core/domain"
	coreerrors "brunch-scraper-api/core/errors"
	"brunch-scraper-api/core/scrape"
	"brunch-scraper-api/core/textproc"
)

// mockRunner is a mock implementation of the ScrapeRunner interface
type mockRunner struct {
	runFunc func(ctx context.Context, req *domain.ArticleRequest, onProgress scrape.ProgressFunc) (*domain.RunResult, error)
}

func (m *mockRunner) Run(ctx context.Context, req *domain.ArticleRequest, onProgress scrape.ProgressFunc) (*domain.RunResult, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, req, onProgress)
	}
	return &domain.RunResult{Success: true}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

func newTestHandler(runner ScrapeRunner) *ScrapeHandler {
	assembler := &textproc.Assembler{
		Now: func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
	return NewScrapeHandler(runner, assembler, nopLogger{})
}

func postScrape(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeEvents splits an NDJSON body into generic event maps.
func decodeEvents(t *testing.T, body string) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event map[string]interface{}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("line %q is not valid JSON: %v", line, err)
		}
		events = append(events, event)
	}
	return events
}

func TestScrapeHandler_InvalidJSON(t *testing.T) {
	rec := postScrape(t, newTestHandler(&mockRunner{}), "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Errorf("body = %q, want VALIDATION_ERROR", rec.Body.String())
	}
}

func TestScrapeHandler_InvalidURL(t *testing.T) {
	rec := postScrape(t, newTestHandler(&mockRunner{}),
		`{"url":"https://example.com/@a","startNum":1,"endNum":2}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScrapeHandler_RangeTooLarge(t *testing.T) {
	rec := postScrape(t, newTestHandler(&mockRunner{}),
		`{"url":"https://brunch.co.kr/@author","startNum":1,"endNum":51}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScrapeHandler_StreamsProgressAndComplete(t *testing.T) {
	runner := &mockRunner{
		runFunc: func(ctx context.Context, req *domain.ArticleRequest, onProgress scrape.ProgressFunc) (*domain.RunResult, error) {
			onProgress(domain.ProgressEvent{Current: 0, Total: 2, URL: req.BaseURL + "/1", Status: "processing article 1"})
			onProgress(domain.ProgressEvent{Current: 1, Total: 2, URL: req.BaseURL + "/1", Title: "One", Status: "collected article 1"})
			onProgress(domain.ProgressEvent{Current: 1, Total: 2, URL: req.BaseURL + "/2", Status: "processing article 2"})
			onProgress(domain.ProgressEvent{Current: 2, Total: 2, URL: req.BaseURL + "/2", Title: "Two", Status: "collected article 2"})
			return &domain.RunResult{
				Records: []domain.ArticleRecord{
					{URL: req.BaseURL + "/1", Number: 1, Title: "One", Content: "Body one", Success: true},
					{URL: req.BaseURL + "/2", Number: 2, Title: "Two", Content: "Body two", Success: true},
				},
				Success: true,
			}, nil
		},
	}

	rec := postScrape(t, newTestHandler(runner),
		`{"url":"https://brunch.co.kr/@author","startNum":1,"endNum":2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	events := decodeEvents(t, rec.Body.String())
	if len(events) != 5 {
		t.Fatalf("events = %d, want 4 progress + 1 complete", len(events))
	}
	for i := 0; i < 4; i++ {
		if events[i]["type"] != "progress" {
			t.Errorf("event %d type = %v, want progress", i, events[i]["type"])
		}
	}

	last := events[4]
	if last["type"] != "complete" {
		t.Fatalf("last event type = %v, want complete", last["type"])
	}
	data, ok := last["data"].(map[string]interface{})
	if !ok {
		t.Fatal("complete event should carry a data object")
	}
	if filename, _ := data["filename"].(string); filename != "brunch_author_1-2_20240102.txt" {
		t.Errorf("filename = %q", filename)
	}
	content, _ := data["content"].(string)
	if !strings.Contains(content, "Body one") || !strings.Contains(content, "Body two") {
		t.Error("document content should carry both bodies")
	}
	metadata, ok := data["metadata"].(map[string]interface{})
	if !ok {
		t.Fatal("complete event should carry metadata")
	}
	if total, _ := metadata["totalArticles"].(float64); total != 2 {
		t.Errorf("totalArticles = %v, want 2", metadata["totalArticles"])
	}
}

func TestScrapeHandler_FatalRunError(t *testing.T) {
	runner := &mockRunner{
		runFunc: func(ctx context.Context, req *domain.ArticleRequest, onProgress scrape.ProgressFunc) (*domain.RunResult, error) {
			fatal := &coreerrors.FatalError{Stage: "fetcher initialization", Err: errors.New("no browser")}
			return &domain.RunResult{Success: false, Error: fatal.Error()}, fatal
		},
	}

	rec := postScrape(t, newTestHandler(runner),
		`{"url":"https://brunch.co.kr/@author","startNum":1,"endNum":2}`)

	// The stream is already committed with 200; the failure arrives as a
	// terminal error event.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	events := decodeEvents(t, rec.Body.String())
	if len(events) != 1 {
		t.Fatalf("events = %d, want a single error event", len(events))
	}
	if events[0]["type"] != "error" {
		t.Errorf("event type = %v, want error", events[0]["type"])
	}
	if events[0]["error"] != "SCRAPING_ERROR" {
		t.Errorf("error code = %v, want SCRAPING_ERROR", events[0]["error"])
	}
	if details, _ := events[0]["details"].(string); !strings.Contains(details, "no browser") {
		t.Errorf("details = %v, want cause included", events[0]["details"])
	}
}

func TestScrapeHandler_CanceledRunWritesNothingMore(t *testing.T) {
	runner := &mockRunner{
		runFunc: func(ctx context.Context, req *domain.ArticleRequest, onProgress scrape.ProgressFunc) (*domain.RunResult, error) {
			onProgress(domain.ProgressEvent{Current: 0, Total: 2, URL: req.BaseURL + "/1", Status: "processing article 1"})
			return nil, context.Canceled
		},
	}

	rec := postScrape(t, newTestHandler(runner),
		`{"url":"https://brunch.co.kr/@author","startNum":1,"endNum":2}`)

	events := decodeEvents(t, rec.Body.String())
	if len(events) != 1 {
		t.Fatalf("events = %d, want only the progress event before cancellation", len(events))
	}
	if events[0]["type"] != "progress" {
		t.Errorf("event type = %v, want progress", events[0]["type"])
	}
}
