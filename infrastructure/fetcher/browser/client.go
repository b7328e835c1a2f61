// ABOUTME: Headless browser fetcher strategy built on chromedp
// ABOUTME: Navigates with a content-loaded wait condition and returns the rendered markup

package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	coreerrors "brunch-scraper-api/core/errors"
	"brunch-scraper-api/core/interfaces"
)

// contentSelector is the primary content region the fetcher waits for
// before serializing the DOM.
const contentSelector = ".wrap_body"

const (
	defaultNavigationTimeout = 30 * time.Second
	defaultWaitTimeout       = 10 * time.Second
)

// Client implements interfaces.Fetcher by driving a headless Chrome
// instance. The browser process is scoped to one Client (one run); each
// Fetch opens its own tab and closes it on every exit path.
type Client struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc

	navigationTimeout time.Duration
	waitTimeout       time.Duration
}

// NewClient launches the browser allocator. The returned client must be
// closed to release the browser process.
func NewClient(opts Options) (*Client, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(opts)...)

	// Start a throwaway browser context so a missing Chrome binary fails
	// here, at run initialization, instead of on the first article.
	probeCtx, probeCancel := chromedp.NewContext(allocCtx)
	defer probeCancel()
	if err := chromedp.Run(probeCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("launching headless browser: %w", err)
	}

	return &Client{
		allocCtx:          allocCtx,
		allocCancel:       cancel,
		navigationTimeout: defaultNavigationTimeout,
		waitTimeout:       defaultWaitTimeout,
	}, nil
}

// Fetch navigates a fresh tab to url, waits for the content region and
// returns the rendered markup. Non-2xx responses and wait timeouts become
// NavigationErrors.
func (c *Client) Fetch(ctx context.Context, url string) (*interfaces.RawPage, error) {
	tabCtx, tabCancel := chromedp.NewContext(c.allocCtx)
	defer tabCancel()

	// Tie the tab both to the caller's context and the navigation budget.
	runCtx, runCancel := context.WithTimeout(tabCtx, c.navigationTimeout)
	defer runCancel()
	go func() {
		select {
		case <-ctx.Done():
			runCancel()
		case <-runCtx.Done():
		}
	}()

	resp, err := chromedp.RunResponse(runCtx, chromedp.Navigate(url))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &coreerrors.NavigationError{URL: url, Message: err.Error()}
	}
	if resp != nil && (resp.Status < 200 || resp.Status > 299) {
		return nil, &coreerrors.NavigationError{
			URL:     url,
			Message: fmt.Sprintf("page returned HTTP %d", resp.Status),
		}
	}

	waitCtx, waitCancel := context.WithTimeout(runCtx, c.waitTimeout)
	defer waitCancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitReady(contentSelector, chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &coreerrors.NavigationError{URL: url, Message: "content region did not appear: " + err.Error()}
	}

	var html, finalURL string
	err = chromedp.Run(runCtx,
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &coreerrors.NavigationError{URL: url, Message: "reading rendered page: " + err.Error()}
	}

	if finalURL == "" {
		finalURL = url
	}
	return &interfaces.RawPage{URL: finalURL, HTML: html}, nil
}

// Close shuts down the browser process. Safe to call more than once.
func (c *Client) Close() error {
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
	return nil
}
