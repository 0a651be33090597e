package selection

import (
	"context"
	"strconv"
	"time"

	"github.com/fwojciec/pagesnip"
)

// ParseDebounce parses a debounce.ms setting value.
func ParseDebounce(value string) (time.Duration, error) {
	ms, err := strconv.Atoi(value)
	if err != nil || ms < 0 {
		return 0, pagesnip.Errorf(pagesnip.EINVALID, "invalid %s %q: want a non-negative integer", pagesnip.SettingDebounceMillis, value)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// WatchSettings applies the stored highlight and debounce settings to s and
// keeps them applied as they change. Unset keys keep s's current values.
// Invalid values fail the initial load; later invalid values are logged and
// ignored. The returned function stops watching.
func WatchSettings(ctx context.Context, svc pagesnip.SettingsService, s *Selector) (func(), error) {
	apply := map[string]func(string) error{
		pagesnip.SettingHighlightOutline: func(v string) error {
			style := s.highlightStyle()
			style.Outline = v
			s.SetHighlightStyle(style)
			return nil
		},
		pagesnip.SettingHighlightBackground: func(v string) error {
			style := s.highlightStyle()
			style.Background = v
			s.SetHighlightStyle(style)
			return nil
		},
		pagesnip.SettingDebounceMillis: func(v string) error {
			d, err := ParseDebounce(v)
			if err != nil {
				return err
			}
			s.SetDebounce(d)
			return nil
		},
	}
	keys := []string{pagesnip.SettingHighlightOutline, pagesnip.SettingHighlightBackground, pagesnip.SettingDebounceMillis}

	for _, key := range keys {
		value, err := svc.GetSetting(ctx, key)
		if pagesnip.ErrorCode(err) == pagesnip.ENOTFOUND {
			continue
		} else if err != nil {
			return nil, err
		}
		if err := apply[key](value); err != nil {
			return nil, err
		}
	}

	var unsubscribe []func()
	for _, key := range keys {
		fn := apply[key]
		unsubscribe = append(unsubscribe, svc.Subscribe(key, func(value string) {
			if err := fn(value); err != nil {
				s.logger().Warn("ignoring setting", "key", key, "value", value, "err", err)
			}
		}))
	}

	return func() {
		for _, u := range unsubscribe {
			u()
		}
	}, nil
}
