package pagesnip

import "context"

// Setting keys understood by the selector.
const (
	SettingHighlightOutline    = "highlight.outline"
	SettingHighlightBackground = "highlight.background"
	SettingDebounceMillis      = "debounce.ms"
)

// SettingsService is a key-value store for user settings.
type SettingsService interface {
	// GetSetting returns the value of key.
	// Returns ENOTFOUND if the key has never been set.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting stores value under key and notifies subscribers of key.
	SetSetting(ctx context.Context, key, value string) error

	// Subscribe calls fn with the new value whenever key changes.
	// The returned function removes the subscription.
	Subscribe(key string, fn func(value string)) (unsubscribe func())
}
