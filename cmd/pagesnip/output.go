package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/fs"
	"github.com/fwojciec/pagesnip/htmltomarkdown"
)

// emit writes a confirmed selection of url to deps.Captures, or prints its
// Markdown when no capture writer is configured. Framed output carries front
// matter so several captures on stdout stay apart.
func emit(deps *Dependencies, url string, data *pagesnip.ElementData, framed bool) error {
	c := &pagesnip.Capture{
		SourceURL: url,
		Path:      data.Path,
		Slug:      data.Slug,
		Markdown:  data.Markdown,
	}
	if c.Slug == "" {
		c.Slug = htmltomarkdown.FallbackSlug
	}

	if deps.Captures != nil {
		if err := deps.Captures.WriteCapture(deps.Ctx, c); err != nil {
			return fmt.Errorf("write capture: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Saved %s as %s\n", url, c.Slug)
		return nil
	}

	if !framed {
		fmt.Fprintln(deps.Stdout, strings.TrimRight(c.Markdown, "\n"))
		return nil
	}
	c.CapturedAt = time.Now()
	out, err := fs.FormatCapture(c)
	if err != nil {
		return err
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
