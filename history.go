package pagesnip

import (
	"context"
	"time"
)

// HistoryEntry is a confirmed selection, kept so its path can be re-applied.
type HistoryEntry struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Path        string    `json:"path"`
	Slug        string    `json:"slug"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *HistoryEntry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "history entry URL required")
	}
	if e.Path == "" {
		return Errorf(EINVALID, "history entry path required")
	}
	return nil
}

// HistoryService represents a service for managing selection history.
type HistoryService interface {
	// CreateEntry records a new selection.
	CreateEntry(ctx context.Context, entry *HistoryEntry) error

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)

	// DeleteEntry permanently removes an entry.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// HistoryFilter represents a filter for FindEntries.
type HistoryFilter struct {
	URL         *string `json:"url"`
	Path        *string `json:"path"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
