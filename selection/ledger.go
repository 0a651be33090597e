package selection

import "github.com/fwojciec/pagesnip"

// Ledger remembers the inline style attribute each highlighted element had
// before it was highlighted, so it can be restored exactly.
type Ledger struct {
	order     []pagesnip.Element
	snapshots map[pagesnip.Element]snapshot
}

// snapshot is a style attribute as it was before highlighting.
type snapshot struct {
	style   string
	present bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{snapshots: make(map[pagesnip.Element]snapshot)}
}

// Acquire snapshots the style attribute of el and applies style. Acquiring an
// element that is already held keeps the original snapshot.
func (l *Ledger) Acquire(el pagesnip.Element, style pagesnip.Style) {
	if _, ok := l.snapshots[el]; !ok {
		v, present := el.Attr("style")
		l.snapshots[el] = snapshot{style: v, present: present}
		l.order = append(l.order, el)
	}
	el.SetStyle(style)
}

// ReleaseAll restores every held element, newest first, and empties the
// ledger.
func (l *Ledger) ReleaseAll() {
	for i := len(l.order) - 1; i >= 0; i-- {
		el := l.order[i]
		if s := l.snapshots[el]; s.present {
			el.SetAttr("style", s.style)
		} else {
			el.RemoveAttr("style")
		}
	}
	l.order = nil
	clear(l.snapshots)
}

// Holds reports whether el is highlighted.
func (l *Ledger) Holds(el pagesnip.Element) bool {
	_, ok := l.snapshots[el]
	return ok
}

// Len returns the number of held elements.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Elements returns the held elements in acquisition order.
func (l *Ledger) Elements() []pagesnip.Element {
	return append([]pagesnip.Element(nil), l.order...)
}
