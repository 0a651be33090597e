package pagesnip

import (
	"context"
	"strings"
	"time"
)

// Strategy names how a content region was located.
type Strategy string

// Location strategies.
const (
	StrategyPreset    Strategy = "preset"
	StrategyHeuristic Strategy = "heuristic"
)

// Location is the outcome of automatic content location.
type Location struct {
	Element  Element
	Strategy Strategy

	// Rule is the preset rule that matched; nil for heuristic locations.
	Rule *PresetRule

	// Score is the heuristic score of Element; zero for preset locations.
	Score float64
}

// Locator finds the main content region of a page.
type Locator interface {
	// Locate returns the best content region of doc.
	// Returns ENOTFOUND if no region qualifies.
	Locate(doc Document) (*Location, error)
}

// PresetRule maps page addresses to known-good content selectors.
type PresetRule struct {
	ID        string    `json:"id" yaml:"-"`
	Name      string    `json:"name" yaml:"name"`
	Patterns  []string  `json:"patterns" yaml:"patterns"`
	Selectors []string  `json:"selectors" yaml:"selectors"`
	Priority  int       `json:"priority" yaml:"priority"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// Validate returns an error if the rule contains invalid fields.
func (r *PresetRule) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "preset name required")
	}
	if len(r.Patterns) == 0 {
		return Errorf(EINVALID, "preset %q requires at least one pattern", r.Name)
	}
	if len(r.Selectors) == 0 {
		return Errorf(EINVALID, "preset %q requires at least one selector", r.Name)
	}
	for _, p := range r.Patterns {
		if strings.TrimSpace(p) == "" {
			return Errorf(EINVALID, "preset %q has an empty pattern", r.Name)
		}
	}
	return nil
}

// Matches reports whether any of the rule's patterns is a substring of url.
func (r *PresetRule) Matches(url string) bool {
	for _, p := range r.Patterns {
		if p != "" && strings.Contains(url, p) {
			return true
		}
	}
	return false
}

// PresetService represents a service for managing per-site preset rules.
type PresetService interface {
	// CreatePresetRule creates a new rule.
	CreatePresetRule(ctx context.Context, rule *PresetRule) error

	// FindPresetRules returns all rules ordered by priority, highest first.
	FindPresetRules(ctx context.Context) ([]*PresetRule, error)

	// DeletePresetRule permanently removes a rule.
	// Returns ENOTFOUND if the rule does not exist.
	DeletePresetRule(ctx context.Context, id string) error
}
