// ABOUTME: Headless Chrome launch options for the browser fetcher strategy
// ABOUTME: Builds chromedp allocator flags, optionally blocking non-essential resource types

package browser

import "github.com/chromedp/chromedp"

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800

	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options configures the headless browser.
type Options struct {
	// BlockResources disables image/plugin/extension loading to reduce
	// load on the origin and speed up navigation.
	BlockResources bool

	UserAgent    string
	WindowWidth  int
	WindowHeight int
}

// DefaultOptions returns the production browser configuration. Resource
// blocking is on: article text never needs images or fonts.
func DefaultOptions() Options {
	return Options{
		BlockResources: true,
		UserAgent:      defaultUserAgent,
		WindowWidth:    defaultWindowWidth,
		WindowHeight:   defaultWindowHeight,
	}
}

// allocatorOptions translates Options into chromedp allocator flags.
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	chromeOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-zygote", true),
		chromedp.Flag("disable-accelerated-2d-canvas", true),
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
	)

	if opts.UserAgent != "" {
		chromeOpts = append(chromeOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.BlockResources {
		chromeOpts = append(chromeOpts,
			chromedp.Flag("disable-images", true),
			chromedp.Flag("disable-plugins", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-remote-fonts", true),
		)
	}

	return chromeOpts
}
