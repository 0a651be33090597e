package slog

import (
	"log/slog"

	"github.com/fwojciec/pagesnip"
)

// Ensure LoggingNotifier implements pagesnip.Notifier.
var _ pagesnip.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with debug logging.
type LoggingNotifier struct {
	next   pagesnip.Notifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next pagesnip.Notifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// Notify delegates to the wrapped notifier and logs the notification.
func (n *LoggingNotifier) Notify(msg pagesnip.Notification) (err error) {
	defer func() {
		path := ""
		if msg.Data != nil {
			path = msg.Data.Path
		}
		n.logger.Debug("notify",
			"type", msg.Type,
			"path", path,
			"err", err,
		)
	}()
	return n.next.Notify(msg)
}
