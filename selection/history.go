package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagesnip"
)

// DefaultHistoryTimeout bounds each history write.
const DefaultHistoryTimeout = 5 * time.Second

// ContentHash returns a stable hash of converted content.
func ContentHash(markdown string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(markdown))
}

// Ensure HistoryRecorder implements pagesnip.Notifier at compile time.
var _ pagesnip.Notifier = (*HistoryRecorder)(nil)

// HistoryRecorder forwards notifications and records every confirmed
// selection of URL. A selection identical to an existing entry for the same
// URL and path is not recorded again.
type HistoryRecorder struct {
	Notifier pagesnip.Notifier
	Service  pagesnip.HistoryService
	URL      string

	Timeout time.Duration
	Now     func() time.Time
}

// Notify forwards n, then records it if it is a confirmed selection.
func (r *HistoryRecorder) Notify(n pagesnip.Notification) error {
	if r.Notifier != nil {
		if err := r.Notifier.Notify(n); err != nil {
			return err
		}
	}
	if n.Type != pagesnip.NotifyElementSelected || n.Data == nil || n.Data.Path == "" {
		return nil
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultHistoryTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return r.record(ctx, n.Data)
}

func (r *HistoryRecorder) record(ctx context.Context, data *pagesnip.ElementData) error {
	hash := ContentHash(data.Markdown)

	existing, err := r.Service.FindEntries(ctx, pagesnip.HistoryFilter{
		URL:         &r.URL,
		Path:        &data.Path,
		ContentHash: &hash,
		Limit:       1,
	})
	if err != nil {
		return fmt.Errorf("find history entries: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	entry := &pagesnip.HistoryEntry{
		URL:         r.URL,
		Path:        data.Path,
		Slug:        data.Slug,
		ContentHash: hash,
		CreatedAt:   now(),
	}
	if err := r.Service.CreateEntry(ctx, entry); err != nil {
		return fmt.Errorf("create history entry: %w", err)
	}
	return nil
}
