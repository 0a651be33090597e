package mock

import (
	"sync"

	"github.com/fwojciec/pagesnip"
)

var _ pagesnip.Surface = (*Surface)(nil)

// Surface is an in-memory pagesnip.Surface. Events passed to Dispatch reach
// the listener attached for the matching group, like a browser would deliver
// them.
type Surface struct {
	mu        sync.Mutex
	listeners map[pagesnip.ListenerSet]pagesnip.Listener
	cursor    string
	statuses  []string

	// Attaches and Detaches count calls, for idempotence checks.
	Attaches int
	Detaches int
}

var groups = []pagesnip.ListenerSet{
	pagesnip.ListenPointer,
	pagesnip.ListenClick,
	pagesnip.ListenCancel,
	pagesnip.ListenNavigate,
}

func (s *Surface) Attach(set pagesnip.ListenerSet, fn pagesnip.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners == nil {
		s.listeners = make(map[pagesnip.ListenerSet]pagesnip.Listener)
	}
	for _, g := range groups {
		if set.Has(g) {
			s.listeners[g] = fn
		}
	}
	s.Attaches++
}

func (s *Surface) Detach(set pagesnip.ListenerSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range groups {
		if set.Has(g) {
			delete(s.listeners, g)
		}
	}
	s.Detaches++
}

func (s *Surface) SetCursor(cursor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

func (s *Surface) ShowStatus(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, message)
}

// Attached returns the listener groups currently attached.
func (s *Surface) Attached() pagesnip.ListenerSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	var set pagesnip.ListenerSet
	for g := range s.listeners {
		set |= g
	}
	return set
}

// Cursor returns the current cursor hint.
func (s *Surface) Cursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Statuses returns the status messages shown so far.
func (s *Surface) Statuses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.statuses...)
}

// Dispatch delivers ev to the attached listener that accepts it.
// It reports whether any listener received the event.
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

// Hover dispatches a pointer-enter on el.
func (s *Surface) Hover(el pagesnip.Element) bool {
	return s.Dispatch(pagesnip.Event{Type: pagesnip.EventPointerEnter, Target: el})
}

// Click dispatches a click on el.
func (s *Surface) Click(el pagesnip.Element) bool {
	return s.Dispatch(pagesnip.Event{Type: pagesnip.EventClick, Target: el})
}

// Press dispatches a key-down for key.
func (s *Surface) Press(key string) bool {
	return s.Dispatch(pagesnip.Event{Type: pagesnip.EventKeyDown, Key: key})
}
