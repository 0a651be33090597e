package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagesnip.HistoryService = (*HistoryService)(nil)

// HistoryService implements pagesnip.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateEntry records a new selection. CreatedAt defaults to now.
func (s *HistoryService) CreateEntry(ctx context.Context, entry *pagesnip.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, url, path, slug, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.URL, entry.Path, entry.Slug, entry.ContentHash,
		entry.CreatedAt.Format(time.RFC3339))

	return err
}

// FindEntries retrieves entries matching the filter, newest first.
func (s *HistoryService) FindEntries(ctx context.Context, filter pagesnip.HistoryFilter) ([]*pagesnip.HistoryEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, path, slug, content_hash, created_at FROM history WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	// rowid breaks ties between entries created within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*pagesnip.HistoryEntry
	for rows.Next() {
		var entry pagesnip.HistoryEntry
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.URL, &entry.Path, &entry.Slug, &entry.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		entry.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// DeleteEntry permanently removes an entry.
func (s *HistoryService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagesnip.Errorf(pagesnip.ENOTFOUND, "history entry not found")
	}

	return nil
}
