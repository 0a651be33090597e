package pagesnip

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations render JavaScript and annotate every element with its
// layout (RectAttr, HiddenAttr, ViewportAttr) so the result can be parsed
// into a Document with real geometry.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render,
	// and returns the annotated HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
