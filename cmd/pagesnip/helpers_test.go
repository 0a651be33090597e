package main_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/pagesnip"
	main "github.com/fwojciec/pagesnip/cmd/pagesnip"
	"github.com/fwojciec/pagesnip/goquery"
	"github.com/fwojciec/pagesnip/htmltomarkdown"
	"github.com/fwojciec/pagesnip/mock"
)

const page = `<html data-pagesnip-viewport="1280x800"><body data-pagesnip-rect="0,0,1280,800">
<nav id="nav" data-pagesnip-rect="0,0,1280,60"><a href="/">Home</a></nav>
<article id="content" data-pagesnip-rect="80,240,800,600">
	<h1>Hello World</h1>
	<p>Body text. This paragraph is long enough to count as the real content of the page.</p>
</article>
</body></html>`

// contentPath is the generated path of the fixture's article.
const contentPath = "article#content"

func pageFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return page, nil
		},
		CloseFn: func() error { return nil },
	}
}

// contentLocator locates the fixture's article.
func contentLocator() *mock.Locator {
	return &mock.Locator{
		LocateFn: func(doc pagesnip.Document) (*pagesnip.Location, error) {
			els, err := doc.Query("#content")
			if err != nil {
				return nil, err
			}
			if len(els) == 0 {
				return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "no content")
			}
			return &pagesnip.Location{Element: els[0], Strategy: pagesnip.StrategyHeuristic}, nil
		},
	}
}

// historyLog is an in-memory history safe for concurrent runs.
type historyLog struct {
	mu      sync.Mutex
	entries []*pagesnip.HistoryEntry
}

func (h *historyLog) service() *mock.HistoryService {
	return &mock.HistoryService{
		CreateEntryFn: func(_ context.Context, e *pagesnip.HistoryEntry) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.entries = append(h.entries, e)
			return nil
		},
		FindEntriesFn: func(context.Context, pagesnip.HistoryFilter) ([]*pagesnip.HistoryEntry, error) {
			return nil, nil
		},
	}
}

func (h *historyLog) all() []*pagesnip.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*pagesnip.HistoryEntry(nil), h.entries...)
}

type env struct {
	deps   *main.Dependencies
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newEnv returns dependencies for page commands over the fixture page.
func newEnv(t *testing.T) *env {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &env{
		stdout: stdout,
		stderr: stderr,
		deps: &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Fetcher:   pageFetcher(),
			Parser:    goquery.NewParser(),
			Locator:   contentLocator(),
			Converter: htmltomarkdown.NewElementConverter(),
		},
	}
}
