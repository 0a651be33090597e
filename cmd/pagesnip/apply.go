package main

import (
	"fmt"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/script"
	"github.com/fwojciec/pagesnip/selection"
)

// Run executes the apply command.
func (c *ApplyCmd) Run(deps *Dependencies) error {
	path, err := c.path(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	doc, err := load(deps, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	var selected *pagesnip.ElementData
	var notifier pagesnip.Notifier = pagesnip.NotifierFunc(func(n pagesnip.Notification) error {
		if n.Type == pagesnip.NotifyElementSelected {
			selected = n.Data
		}
		return nil
	})
	if deps.History != nil {
		notifier = &selection.HistoryRecorder{Notifier: notifier, Service: deps.History, URL: c.URL}
	}

	sel := selection.NewSelector(doc, script.NewSurface(nil), notifier, deps.Converter, deps.Locator)
	if deps.Logger != nil {
		sel.Logger = deps.Logger
	}
	if _, err := sel.ApplyPath(path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}
	if selected == nil {
		return pagesnip.Errorf(pagesnip.EINTERNAL, "selection of %s was not delivered", c.URL)
	}

	return emit(deps, c.URL, selected, false)
}

// path returns the explicit path or, with --last, the path of the newest
// history entry for the URL.
func (c *ApplyCmd) path(deps *Dependencies) (string, error) {
	switch {
	case c.Last && c.Path != "":
		return "", pagesnip.Errorf(pagesnip.EINVALID, "give either a path or --last, not both")
	case c.Path != "":
		return c.Path, nil
	case !c.Last:
		return "", pagesnip.Errorf(pagesnip.EINVALID, "path required; use --last to reuse the most recent capture")
	}

	entries, err := deps.History.FindEntries(deps.Ctx, pagesnip.HistoryFilter{URL: &c.URL, Limit: 1})
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", pagesnip.Errorf(pagesnip.ENOTFOUND, "no captures of %s yet", c.URL)
	}
	return entries[0].Path, nil
}

// load renders url and parses the result.
func load(deps *Dependencies, url string) (pagesnip.Document, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	doc, err := deps.Parser.Parse(html, url)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}
