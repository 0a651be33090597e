// Package rod renders pages in headless Chrome and annotates every element
// with its layout, so the snapshot can be scored without a live browser.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults for NewFetcher.
const (
	DefaultFetchTimeout   = 30 * time.Second
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

var errClosed = pagesnip.Errorf(pagesnip.EINVALID, "fetcher is closed")

// AnnotateScript records each element's bounding box and computed
// visibility as attributes, and the viewport size on the root element.
var AnnotateScript = fmt.Sprintf(`() => {
	const round = (n) => Math.round(n * 100) / 100;
	for (const el of document.querySelectorAll('*')) {
		const r = el.getBoundingClientRect();
		el.setAttribute(%[1]q, [r.top, r.left, r.width, r.height].map(round).join(','));
		const cs = getComputedStyle(el);
		if (cs.display === 'none' || cs.visibility === 'hidden') {
			el.setAttribute(%[2]q, '');
		}
	}
	document.documentElement.setAttribute(%[3]q, window.innerWidth + 'x' + window.innerHeight);
}`, pagesnip.RectAttr, pagesnip.HiddenAttr, pagesnip.ViewportAttr)

// Ensure Fetcher implements pagesnip.Fetcher at compile time.
var _ pagesnip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered, layout-annotated HTML using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	width    int
	height   int
	maxPages int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithViewport sets the window size pages are laid out in.
func WithViewport(width, height int) Option {
	return func(f *Fetcher) { f.width, f.height = width, height }
}

// WithMaxPages sets the number of pages before the browser is recycled.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) { f.maxPages = n }
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		width:   DefaultViewportWidth,
		height:  DefaultViewportHeight,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits for it to load, annotates the layout
// and returns the resulting HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             f.width,
		Height:            f.height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return "", fmt.Errorf("set viewport: %w", err)
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if _, err := page.Eval(AnnotateScript); err != nil {
		return "", fmt.Errorf("annotate layout: %w", err)
	}

	return page.HTML()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
