package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagesnip.PresetService = (*PresetService)(nil)

// PresetService implements pagesnip.PresetService using SQLite.
type PresetService struct {
	db *DB
}

// NewPresetService creates a new PresetService.
func NewPresetService(db *DB) *PresetService {
	return &PresetService{db: db}
}

// CreatePresetRule creates a new rule.
func (s *PresetService) CreatePresetRule(ctx context.Context, rule *pagesnip.PresetRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	rule.ID = uuid.New().String()
	rule.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_presets (id, name, patterns, selectors, priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rule.ID, rule.Name, joinLines(rule.Patterns), joinLines(rule.Selectors), rule.Priority,
		rule.CreatedAt.Format(time.RFC3339))

	return err
}

// FindPresetRules returns all rules, highest priority first. Rules of equal
// priority keep their insertion order.
func (s *PresetService) FindPresetRules(ctx context.Context) ([]*pagesnip.PresetRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, patterns, selectors, priority, created_at
		FROM site_presets
		ORDER BY priority DESC, rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*pagesnip.PresetRule
	for rows.Next() {
		var rule pagesnip.PresetRule
		var patterns, selectors, createdAt string

		if err := rows.Scan(&rule.ID, &rule.Name, &patterns, &selectors, &rule.Priority, &createdAt); err != nil {
			return nil, err
		}

		rule.Patterns = splitLines(patterns)
		rule.Selectors = splitLines(selectors)
		rule.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}

// DeletePresetRule permanently removes a rule.
func (s *PresetService) DeletePresetRule(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM site_presets WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagesnip.Errorf(pagesnip.ENOTFOUND, "preset rule not found")
	}

	return nil
}
