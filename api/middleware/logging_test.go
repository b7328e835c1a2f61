package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordingLogger captures log entries for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []map[string]interface{}
}

func (l *recordingLogger) record(fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fields)
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record(fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record(fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record(fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record(fields) }

func TestRequestLoggingMiddleware_LogsStartAndCompletion(t *testing.T) {
	logger := &recordingLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(logger.entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(logger.entries))
	}
	if status, ok := logger.entries[1]["status"].(int); !ok || status != http.StatusTeapot {
		t.Errorf("completion status = %v, want 418", logger.entries[1]["status"])
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestRequestLoggingMiddleware_DefaultsStatusTo200(t *testing.T) {
	logger := &recordingLogger{}
	handler := RequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("implicit 200"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if status, _ := logger.entries[1]["status"].(int); status != http.StatusOK {
		t.Errorf("status = %v, want 200", logger.entries[1]["status"])
	}
}

func TestResponseWriter_FlushPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	// httptest.ResponseRecorder implements http.Flusher; the wrapper must
	// still satisfy it for streaming handlers.
	var w http.ResponseWriter = wrapped
	flusher, ok := w.(http.Flusher)
	if !ok {
		t.Fatal("wrapped writer should expose Flush")
	}
	flusher.Flush()
	if !rec.Flushed {
		t.Error("Flush should reach the underlying writer")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*http.Request)
		want  string
	}{
		{"forwarded-for first hop", func(r *http.Request) {
			r.Header.Set("X-Forwarded-For", "10.0.0.1, 192.168.0.1")
		}, "10.0.0.1"},
		{"real-ip fallback", func(r *http.Request) {
			r.Header.Set("X-Real-IP", "10.0.0.9")
		}, "10.0.0.9"},
		{"remote addr fallback", func(r *http.Request) {}, "192.0.2.1:1234"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			tc.setup(req)
			if got := clientIP(req); got != tc.want {
				t.Errorf("clientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
