package script

import (
	"sync"

	"github.com/fwojciec/pagesnip"
)

// Ensure Surface implements pagesnip.Surface at compile time.
var _ pagesnip.Surface = (*Surface)(nil)

// groups lists listener groups in dispatch order.
var groups = []pagesnip.ListenerSet{
	pagesnip.ListenPointer,
	pagesnip.ListenClick,
	pagesnip.ListenCancel,
	pagesnip.ListenNavigate,
}

// Surface delivers scripted events to attached listeners and writes status
// messages to a Writer.
type Surface struct {
	out *Writer

	mu        sync.Mutex
	listeners map[pagesnip.ListenerSet]pagesnip.Listener
	cursor    string
}

// NewSurface returns a Surface that reports status messages to out.
func NewSurface(out *Writer) *Surface {
	return &Surface{out: out, listeners: make(map[pagesnip.ListenerSet]pagesnip.Listener)}
}

// Attach registers fn for the groups in set.
func (s *Surface) Attach(set pagesnip.ListenerSet, fn pagesnip.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range groups {
		if set.Has(g) {
			s.listeners[g] = fn
		}
	}
}

// Detach removes the listeners of the groups in set.
func (s *Surface) Detach(set pagesnip.ListenerSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range groups {
		if set.Has(g) {
			delete(s.listeners, g)
		}
	}
}

// SetCursor records the cursor hint.
func (s *Surface) SetCursor(cursor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

// Cursor returns the current cursor hint.
func (s *Surface) Cursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// ShowStatus writes message as a status line.
func (s *Surface) ShowStatus(message string) {
	if s.out != nil {
		_ = s.out.WriteStatus(message)
	}
}

// Dispatch delivers ev to the listener that accepts it and reports whether
// one did.
func (s *Surface) Dispatch(ev pagesnip.Event) bool {
	s.mu.Lock()
	var fn pagesnip.Listener
	for _, g := range groups {
		if l, ok := s.listeners[g]; ok && g.Accepts(ev) {
			fn = l
			break
		}
	}
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(ev)
	return true
}
