package interfaces

import "context"

// RawPage is the unparsed markup of one fetched article page.
type RawPage struct {
	// URL is the final URL after redirects.
	URL string

	// HTML is the raw (or browser-rendered) markup.
	HTML string
}

// Fetcher retrieves raw page content for one article URL. Implementations
// are the plain HTTP strategy and the headless browser strategy; both are
// scoped to a single run and must release per-call resources (tab, request
// context) on every exit path.
type Fetcher interface {
	// Fetch retrieves the page at url. It returns a FetchError or
	// NavigationError on timeout, non-2xx status or cancellation.
	Fetch(ctx context.Context, url string) (*RawPage, error)

	// Close releases the fetcher's long-lived resources (browser process,
	// idle connections). Safe to call more than once.
	Close() error
}

// FetcherFactory constructs a Fetcher for one run. Each run owns and tears
// down its own instance; fetchers are never shared across concurrent runs.
type FetcherFactory func() (Fetcher, error)
