package main

import (
	"fmt"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/script"
	"github.com/fwojciec/pagesnip/selection"
	psslog "github.com/fwojciec/pagesnip/slog"
)

// Run executes the session command.
func (c *SessionCmd) Run(deps *Dependencies) error {
	doc, err := load(deps, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	out := script.NewWriter(deps.Stdout)
	surface := script.NewSurface(out)

	var notifier pagesnip.Notifier = out
	if deps.History != nil {
		notifier = &selection.HistoryRecorder{Notifier: notifier, Service: deps.History, URL: c.URL}
	}
	if deps.Logger != nil {
		notifier = psslog.NewLoggingNotifier(notifier, deps.Logger)
	}

	sel := selection.NewSelector(doc, surface, notifier, deps.Converter, deps.Locator)
	if deps.Logger != nil {
		sel.Logger = deps.Logger
	}
	if deps.Settings != nil {
		unwatch, err := selection.WatchSettings(deps.Ctx, deps.Settings, sel)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
			return err
		}
		defer unwatch()
	}

	runner := &script.Runner{Selector: sel, Surface: surface, Out: out}
	if err := runner.Run(deps.Ctx, deps.Stdin); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}
	return nil
}
