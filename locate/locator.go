package locate

import "github.com/fwojciec/pagesnip"

// Ensure Locator implements pagesnip.Locator at compile time.
var _ pagesnip.Locator = (*Locator)(nil)

// Locator tries presets first and falls back to another locator, usually a
// Scorer, when no preset applies.
type Locator struct {
	Presets  pagesnip.Locator
	Fallback pagesnip.Locator
}

// NewLocator returns a Locator over the given preset rules (plus the
// built-in defaults) that falls back to a Scorer.
func NewLocator(rules []*pagesnip.PresetRule) *Locator {
	return &Locator{
		Presets:  NewPresetMatcher(rules),
		Fallback: NewScorer(),
	}
}

// Locate returns the preset location when there is one, else the fallback's.
func (l *Locator) Locate(doc pagesnip.Document) (*pagesnip.Location, error) {
	if l.Presets != nil {
		loc, err := l.Presets.Locate(doc)
		if err == nil {
			return loc, nil
		}
		if pagesnip.ErrorCode(err) != pagesnip.ENOTFOUND {
			return nil, err
		}
	}
	if l.Fallback == nil {
		return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "no content located on %s", doc.URL())
	}
	return l.Fallback.Locate(doc)
}
