// Package batch runs smart selection over many pages concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/selection"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Runner fetches each page, locates its main content and confirms it as a
// selection, exactly as a user accepting the smart-select suggestion would.
type Runner struct {
	Fetcher     pagesnip.Fetcher
	Parser      pagesnip.Parser
	Locator     pagesnip.Locator
	Converter   pagesnip.ElementConverter
	RateLimiter pagesnip.DomainLimiter

	// Wrap, if set, decorates the notifier of each page, e.g. to record
	// history. It must forward to next.
	Wrap func(url string, next pagesnip.Notifier) pagesnip.Notifier

	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// NewRunner returns a Runner with a per-domain limit of
// DefaultRequestsPerSecond.
func NewRunner(fetcher pagesnip.Fetcher, parser pagesnip.Parser, locator pagesnip.Locator, converter pagesnip.ElementConverter) *Runner {
	return &Runner{
		Fetcher:     fetcher,
		Parser:      parser,
		Locator:     locator,
		Converter:   converter,
		RateLimiter: NewDomainLimiter(DefaultRequestsPerSecond),
	}
}

// Result is the outcome of one page.
type Result struct {
	Position int
	URL      string
	Data     *pagesnip.ElementData
	Strategy pagesnip.Strategy
	Err      error
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// Run processes urls and returns one Result per URL in input order. A failing
// page does not stop the others. The returned error is non-nil only when ctx
// ends before every page is done.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) ([]Result, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan Result, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- r.process(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, total)
	var completed atomic.Int64
	for result := range resultCh {
		n := int(completed.Add(1))
		results[result.Position] = result

		if progress == nil {
			continue
		}
		if result.Err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: result.URL, Error: result.Err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: result.URL})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results, ctx.Err()
}

func (r *Runner) process(ctx context.Context, position int, url string) Result {
	result := Result{Position: position, URL: url}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, Domain(url)); err != nil {
			result.Err = err
			return result
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, r.Fetcher, url, delays, r.Logger)
	if err != nil {
		result.Err = fmt.Errorf("fetch: %w", err)
		return result
	}

	doc, err := r.Parser.Parse(html, url)
	if err != nil {
		result.Err = fmt.Errorf("parse: %w", err)
		return result
	}

	var selected *pagesnip.ElementData
	var notifier pagesnip.Notifier = pagesnip.NotifierFunc(func(n pagesnip.Notification) error {
		if n.Type == pagesnip.NotifyElementSelected {
			selected = n.Data
		}
		return nil
	})
	if r.Wrap != nil {
		notifier = r.Wrap(url, notifier)
	}

	sel := selection.NewSelector(doc, headless{}, notifier, r.Converter, r.Locator)
	if r.Logger != nil {
		sel.Logger = r.Logger
	}

	loc, err := sel.SmartSelect()
	if err != nil {
		result.Err = err
		return result
	}
	if err := sel.ConfirmSelection(); err != nil {
		result.Err = err
		return result
	}
	if selected == nil {
		result.Err = pagesnip.Errorf(pagesnip.EINTERNAL, "selection of %s was not delivered", url)
		return result
	}

	result.Data = selected
	result.Strategy = loc.Strategy
	return result
}

// headless is a Surface for pages nobody is looking at.
type headless struct{}

func (headless) Attach(pagesnip.ListenerSet, pagesnip.Listener) {}
func (headless) Detach(pagesnip.ListenerSet)                     {}
func (headless) SetCursor(string)                                {}
func (headless) ShowStatus(string)                               {}
