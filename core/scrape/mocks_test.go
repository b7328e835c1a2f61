package scrape

import (
	"context"
	"sync"
	"time"

	"brunch-scraper-api/core/interfaces"
)

// mockFetcher is a mock implementation of the Fetcher interface
type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) (*interfaces.RawPage, error)

	mu          sync.Mutex
	fetchedURLs []string
	closeCalls  int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*interfaces.RawPage, error) {
	m.mu.Lock()
	m.fetchedURLs = append(m.fetchedURLs, url)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return &interfaces.RawPage{URL: url, HTML: ""}, nil
}

func (m *mockFetcher) Close() error {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
	return nil
}

func (m *mockFetcher) closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls > 0
}

func factoryFor(f *mockFetcher) interfaces.FetcherFactory {
	return func() (interfaces.Fetcher, error) {
		return f, nil
	}
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data, ok := m.store[key]; ok {
		return data, nil
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (m *mockLogger) log(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg, fields) }

// articleHTML renders a minimal brunch-shaped article page.
func articleHTML(title, body string) string {
	return `<html><head><title>` + title + `</title></head><body>` +
		`<h1 class="cover_title">` + title + `</h1>` +
		`<div class="wrap_body">` + body + `</div>` +
		`</body></html>`
}

const notFoundHTML = `<html><head><title>brunch</title></head><body>존재하지 않는 글입니다.</body></html>`
