package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/fwojciec/pagesnip"
)

// Compile-time interface verification.
var _ pagesnip.SettingsService = (*SettingsService)(nil)

// SettingsService implements pagesnip.SettingsService using SQLite.
// Subscriptions are held in memory and only see changes made through the
// same SettingsService.
type SettingsService struct {
	db *DB

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func(string)
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db, subs: make(map[string]map[int]func(string))}
}

// GetSetting returns the value stored under key.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", pagesnip.Errorf(pagesnip.ENOTFOUND, "setting %q not found", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores value under key and notifies subscribers of key.
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return pagesnip.Errorf(pagesnip.EINVALID, "setting key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
	return nil
}

// Subscribe calls fn with the new value whenever key is set.
func (s *SettingsService) Subscribe(key string, fn func(value string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(string))
	}
	s.subs[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs[key], id)
		})
	}
}
