package mock

import "github.com/fwojciec/pagesnip"

var _ pagesnip.Locator = (*Locator)(nil)

// Locator is a mock implementation of pagesnip.Locator.
type Locator struct {
	LocateFn func(doc pagesnip.Document) (*pagesnip.Location, error)
}

func (l *Locator) Locate(doc pagesnip.Document) (*pagesnip.Location, error) {
	return l.LocateFn(doc)
}
