package locate

import (
	"slices"

	"github.com/fwojciec/pagesnip"
)

// DefaultPresetRules returns the built-in rules for well-known sites.
func DefaultPresetRules() []*pagesnip.PresetRule {
	return []*pagesnip.PresetRule{
		{Name: "medium", Patterns: []string{"medium.com"}, Selectors: []string{"article", "main"}},
		{Name: "github", Patterns: []string{"github.com"}, Selectors: []string{".markdown-body", "#readme"}},
		{Name: "wikipedia", Patterns: []string{"wikipedia.org"}, Selectors: []string{"#mw-content-text", "#content"}},
		{Name: "stackoverflow", Patterns: []string{"stackoverflow.com", "stackexchange.com"}, Selectors: []string{"#question", "#mainbar"}},
		{Name: "devto", Patterns: []string{"dev.to"}, Selectors: []string{"#article-body", ".crayons-article__body"}},
		{Name: "substack", Patterns: []string{"substack.com"}, Selectors: []string{".available-content", ".post"}},
	}
}

// Ensure PresetMatcher implements pagesnip.Locator at compile time.
var _ pagesnip.Locator = (*PresetMatcher)(nil)

// PresetMatcher locates content with per-site selectors.
type PresetMatcher struct {
	rules []*pagesnip.PresetRule
}

// NewPresetMatcher returns a matcher over rules followed by the built-in
// defaults. Rules are tried by priority, highest first; equal priorities
// keep their order, so caller rules win over defaults.
func NewPresetMatcher(rules []*pagesnip.PresetRule) *PresetMatcher {
	all := make([]*pagesnip.PresetRule, 0, len(rules)+6)
	all = append(all, rules...)
	all = append(all, DefaultPresetRules()...)
	return NewPresetMatcherWithoutDefaults(all)
}

// NewPresetMatcherWithoutDefaults returns a matcher over rules only.
func NewPresetMatcherWithoutDefaults(rules []*pagesnip.PresetRule) *PresetMatcher {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b *pagesnip.PresetRule) int {
		return b.Priority - a.Priority
	})
	return &PresetMatcher{rules: sorted}
}

// Rules returns the rules in the order they are tried.
func (m *PresetMatcher) Rules() []*pagesnip.PresetRule {
	return slices.Clone(m.rules)
}

// Locate returns the first valid element addressed by a rule matching the
// document URL. Returns ENOTFOUND if no rule yields one.
func (m *PresetMatcher) Locate(doc pagesnip.Document) (*pagesnip.Location, error) {
	url := doc.URL()
	for _, rule := range m.rules {
		if !rule.Matches(url) {
			continue
		}
		for _, sel := range rule.Selectors {
			el := resolve(doc, sel)
			if el == nil {
				continue
			}
			return &pagesnip.Location{
				Element:  el,
				Strategy: pagesnip.StrategyPreset,
				Rule:     rule,
			}, nil
		}
	}
	return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "no preset matches %s", url)
}

// resolve returns the first valid element matching selector, or nil.
// Malformed selectors resolve to nil.
func resolve(doc pagesnip.Document, selector string) pagesnip.Element {
	els, err := doc.Query(selector)
	if err != nil {
		return nil
	}
	for _, el := range els {
		if IsValid(el) {
			return el
		}
	}
	return nil
}
