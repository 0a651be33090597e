package mock

import (
	"context"

	"github.com/fwojciec/pagesnip"
)

var _ pagesnip.PresetService = (*PresetService)(nil)

// PresetService is a mock implementation of pagesnip.PresetService.
type PresetService struct {
	CreatePresetRuleFn func(ctx context.Context, rule *pagesnip.PresetRule) error
	FindPresetRulesFn  func(ctx context.Context) ([]*pagesnip.PresetRule, error)
	DeletePresetRuleFn func(ctx context.Context, id string) error
}

func (s *PresetService) CreatePresetRule(ctx context.Context, rule *pagesnip.PresetRule) error {
	return s.CreatePresetRuleFn(ctx, rule)
}

func (s *PresetService) FindPresetRules(ctx context.Context) ([]*pagesnip.PresetRule, error) {
	return s.FindPresetRulesFn(ctx)
}

func (s *PresetService) DeletePresetRule(ctx context.Context, id string) error {
	return s.DeletePresetRuleFn(ctx, id)
}

var _ pagesnip.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of pagesnip.HistoryService.
type HistoryService struct {
	CreateEntryFn func(ctx context.Context, entry *pagesnip.HistoryEntry) error
	FindEntriesFn func(ctx context.Context, filter pagesnip.HistoryFilter) ([]*pagesnip.HistoryEntry, error)
	DeleteEntryFn func(ctx context.Context, id string) error
}

func (s *HistoryService) CreateEntry(ctx context.Context, entry *pagesnip.HistoryEntry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *HistoryService) FindEntries(ctx context.Context, filter pagesnip.HistoryFilter) ([]*pagesnip.HistoryEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *HistoryService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}

var _ pagesnip.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of pagesnip.SettingsService.
type SettingsService struct {
	GetSettingFn func(ctx context.Context, key string) (string, error)
	SetSettingFn func(ctx context.Context, key, value string) error
	SubscribeFn  func(key string, fn func(value string)) func()
}

func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.GetSettingFn(ctx, key)
}

func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.SetSettingFn(ctx, key, value)
}

func (s *SettingsService) Subscribe(key string, fn func(value string)) func() {
	return s.SubscribeFn(key, fn)
}

var _ pagesnip.CaptureWriter = (*CaptureWriter)(nil)

// CaptureWriter is a mock implementation of pagesnip.CaptureWriter.
type CaptureWriter struct {
	WriteCaptureFn func(ctx context.Context, c *pagesnip.Capture) error
}

func (w *CaptureWriter) WriteCapture(ctx context.Context, c *pagesnip.Capture) error {
	return w.WriteCaptureFn(ctx, c)
}
