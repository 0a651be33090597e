package main

import (
	"fmt"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/batch"
	"github.com/fwojciec/pagesnip/selection"
)

// Run executes the smart command.
func (c *SmartCmd) Run(deps *Dependencies) error {
	runner := deps.Batch
	if c.Concurrency > 0 {
		runner.Concurrency = c.Concurrency
	}
	if deps.History != nil {
		runner.Wrap = func(url string, next pagesnip.Notifier) pagesnip.Notifier {
			return &selection.HistoryRecorder{Notifier: next, Service: deps.History, URL: url}
		}
	}

	progress := func(event batch.ProgressEvent) {
		if event.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, pagesnip.ErrorMessage(event.Error))
		}
	}

	results, err := runner.Run(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if err := emit(deps, r.URL, r.Data, len(c.URLs) > 1); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(results))
	}
	return nil
}
