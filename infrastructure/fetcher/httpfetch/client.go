// ABOUTME: Plain HTTP fetcher strategy with timeout and redirect support
// ABOUTME: Uses a crawler user agent so the origin serves article pages instead of login redirects

package httpfetch

import (
	"context"
	"io"
	"net/http"
	"time"

	coreerrors "brunch-scraper-api/core/errors"
	"brunch-scraper-api/core/interfaces"
)

// crawlerUserAgent bypasses the login-wall redirect brunch applies to
// regular browser user agents.
const crawlerUserAgent = "Googlebot/2.1 (+http://www.google.com/bot.html)"

// defaultHeaders are sent with every request.
var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "ko-KR,ko;q=0.9,en;q=0.8",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Client implements interfaces.Fetcher over net/http.
type Client struct {
	client *http.Client
}

// NewClient creates an HTTP fetcher with the given request timeout.
// Redirects are followed.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch performs a GET and returns the raw markup. Timeouts, request
// errors and non-2xx statuses become FetchErrors; context cancellation is
// surfaced as-is.
func (c *Client) Fetch(ctx context.Context, url string) (*interfaces.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Message: err.Error()}
	}

	req.Header.Set("User-Agent", crawlerUserAgent)
	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &coreerrors.FetchError{URL: url, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &coreerrors.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Message: "reading response body: " + err.Error()}
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &interfaces.RawPage{URL: finalURL, HTML: string(body)}, nil
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
