package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	coreerrors "brunch-scraper-api/core/errors"
)

func TestFetch_ReturnsPageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	defer client.Close()

	page, err := client.Fetch(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if page.HTML != "<html><body>hello</body></html>" {
		t.Errorf("HTML = %q", page.HTML)
	}
	if page.URL != server.URL {
		t.Errorf("URL = %q, want %q", page.URL, server.URL)
	}
}

func TestFetch_SendsCrawlerHeaders(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	defer client.Close()

	if _, err := client.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gotUA != crawlerUserAgent {
		t.Errorf("User-Agent = %q, want crawler user agent", gotUA)
	}
	if gotLang == "" {
		t.Error("Accept-Language header should be set")
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	defer client.Close()

	page, err := client.Fetch(context.Background(), server.URL)

	if page != nil {
		t.Error("Fetch should return no page for 404")
	}
	if !coreerrors.IsFetch(err) {
		t.Fatalf("error = %v, want FetchError", err)
	}
	var fetchErr *coreerrors.FetchError
	errors.As(err, &fetchErr)
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fetchErr.StatusCode)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("final"))
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirector.Close()

	client := NewClient(5 * time.Second)
	defer client.Close()

	page, err := client.Fetch(context.Background(), redirector.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if page.HTML != "final" {
		t.Errorf("HTML = %q, want %q", page.HTML, "final")
	}
	if page.URL != target.URL {
		t.Errorf("URL = %q, want final URL %q after redirect", page.URL, target.URL)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, server.URL)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(10 * time.Millisecond)
	defer client.Close()

	_, err := client.Fetch(context.Background(), server.URL)

	if err == nil {
		t.Fatal("Fetch should fail on timeout")
	}
	if !coreerrors.IsFetch(err) {
		t.Errorf("error = %v, want FetchError", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	client := NewClient(time.Second)
	if err := client.Close(); err != nil {
		t.Errorf("first Close returned %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}
