package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/csspath"
)

// Ensure LoggingLocator implements pagesnip.Locator.
var _ pagesnip.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator with logging of how content was found.
type LoggingLocator struct {
	next   pagesnip.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next pagesnip.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the outcome.
func (l *LoggingLocator) Locate(doc pagesnip.Document) (loc *pagesnip.Location, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", doc.URL(), "duration", time.Since(begin)}
		if loc != nil {
			rule := "(none)"
			if loc.Rule != nil {
				rule = loc.Rule.Name
			}
			attrs = append(attrs,
				"strategy", loc.Strategy,
				"rule", rule,
				"score", loc.Score,
				"path", csspath.Generate(loc.Element),
			)
		}
		attrs = append(attrs, "err", err)
		l.logger.Info("locate", attrs...)
	}(time.Now())
	return l.next.Locate(doc)
}
