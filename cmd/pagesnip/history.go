package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagesnip"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := pagesnip.HistoryFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	entries, err := deps.History.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No captures yet. Use 'pagesnip smart' to make one.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.URL, e.Slug, e.Path)
	}
	return nil
}
