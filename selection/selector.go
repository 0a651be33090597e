package selection

import (
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/csspath"
)

// DefaultDebounce is the quiet period before a navigation update is sent.
const DefaultDebounce = 100 * time.Millisecond

// DefaultHighlightStyle is applied to highlighted elements.
var DefaultHighlightStyle = pagesnip.Style{
	Outline:    "2px solid #ff6b35",
	Background: "rgba(255, 107, 53, 0.1)",
}

// Timer is a pending debounced call.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Selector runs selection sessions against one page. It executes the
// commands of Transition and sends the resulting notifications.
//
// Event handling is synchronous. Debounced updates fire on their own
// goroutine; a mutex guards the session and notifications are sent after it
// is released.
type Selector struct {
	Document  pagesnip.Document
	Surface   pagesnip.Surface
	Notifier  pagesnip.Notifier
	Converter pagesnip.ElementConverter
	Locator   pagesnip.Locator

	// HighlightStyle and Debounce may be changed while the selector runs
	// with SetHighlightStyle and SetDebounce.
	HighlightStyle pagesnip.Style
	Debounce       time.Duration

	// AfterFunc replaces time.AfterFunc, e.g. in tests.
	AfterFunc AfterFunc

	Logger *slog.Logger

	mu       sync.Mutex
	state    State
	ledger   *Ledger
	attached pagesnip.ListenerSet
	pending  Timer
	gen      uint64

	// anchorPath locates the anchor again if the page replaces it.
	anchorPath string
}

// NewSelector returns a Selector with default highlight style and debounce.
func NewSelector(doc pagesnip.Document, surface pagesnip.Surface, notifier pagesnip.Notifier, converter pagesnip.ElementConverter, locator pagesnip.Locator) *Selector {
	return &Selector{
		Document:       doc,
		Surface:        surface,
		Notifier:       notifier,
		Converter:      converter,
		Locator:        locator,
		HighlightStyle: DefaultHighlightStyle,
		Debounce:       DefaultDebounce,
	}
}

// StartSelection begins hovering. It does nothing if a session is active.
func (s *Selector) StartSelection() {
	s.apply(Start{})
}

// StopSelection cancels an active session. It does nothing when idle.
func (s *Selector) StopSelection() {
	s.apply(Stop{})
}

// SmartSelect locates the main content and selects it for keyboard
// adjustment. Returns ENOTFOUND, leaving the session unchanged, when nothing
// is found.
func (s *Selector) SmartSelect() (*pagesnip.Location, error) {
	if s.Locator == nil {
		return nil, pagesnip.Errorf(pagesnip.EINTERNAL, "no locator configured")
	}
	loc, err := s.Locator.Locate(s.Document)
	if err != nil {
		return nil, err
	}
	if !selectable(loc.Element) {
		return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "located element is a root container")
	}
	s.apply(Preselect{Element: loc.Element})
	return loc, nil
}

// ApplyPath resolves path and confirms the element it addresses.
// Returns EINVALID for malformed paths and ENOTFOUND when nothing matches;
// the session is unchanged in both cases.
func (s *Selector) ApplyPath(path string) (pagesnip.Element, error) {
	el, err := csspath.Resolve(s.Document, path)
	if err != nil {
		return nil, err
	}
	if !selectable(el) {
		return nil, pagesnip.Errorf(pagesnip.EINVALID, "path %q addresses a root container", path)
	}
	s.apply(Select{Element: el})
	return el, nil
}

// ConfirmSelection confirms the current anchor, like pressing Enter.
// Returns ECONFLICT if nothing is selected.
func (s *Selector) ConfirmSelection() error {
	if s.Mode() != pagesnip.ModeNavigating {
		return pagesnip.Errorf(pagesnip.ECONFLICT, "no element selected")
	}
	s.apply(Confirm{})
	return nil
}

// HandleEvent feeds a page event into the session. Events for listener
// groups that are not attached are dropped.
func (s *Selector) HandleEvent(ev pagesnip.Event) {
	s.mu.Lock()
	accepted := s.attached.Accepts(ev)
	s.mu.Unlock()
	if !accepted {
		return
	}

	switch ev.Type {
	case pagesnip.EventPointerEnter:
		s.apply(PointerEnter{Target: ev.Target})
	case pagesnip.EventClick:
		s.apply(Click{Target: ev.Target})
	case pagesnip.EventKeyDown:
		s.apply(Key{Key: ev.Key})
	}
}

// Flush sends a pending debounced update immediately.
func (s *Selector) Flush() {
	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending.Stop()
	s.pending = nil
	gen := s.gen
	s.mu.Unlock()

	s.fire(gen, nil)
}

// Mode returns the current session mode.
func (s *Selector) Mode() pagesnip.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current().Mode()
}

// Anchor returns the selected element while navigating, else nil.
func (s *Selector) Anchor() pagesnip.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.current().(Navigating); ok {
		return n.Anchor
	}
	return nil
}

// Highlighted returns the elements currently highlighted.
func (s *Selector) Highlighted() []pagesnip.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return nil
	}
	return s.ledger.Elements()
}

// SetHighlightStyle changes the highlight style. It applies from the next
// highlight on.
func (s *Selector) SetHighlightStyle(style pagesnip.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.HighlightStyle = style
}

func (s *Selector) highlightStyle() pagesnip.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.HighlightStyle
}

// SetDebounce changes the debounce period. It applies from the next
// scheduled update on.
func (s *Selector) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Debounce = d
}

// apply runs one transition and sends the notifications it produced.
func (s *Selector) apply(in Input) {
	s.mu.Lock()
	out := s.transition(in)
	s.mu.Unlock()

	s.send(out)
}

// transition must be called with s.mu held.
func (s *Selector) transition(in Input) (out []pagesnip.Notification) {
	defer func() {
		if _, ok := s.current().(Idle); ok {
			s.cleanup()
		}
	}()

	if k, ok := in.(Key); ok && !s.refreshAnchor(k) {
		return nil
	}

	next, cmds := Transition(s.current(), in)
	s.state = next
	if n, ok := next.(Navigating); ok {
		s.anchorPath = csspath.Generate(n.Anchor)
	} else {
		s.anchorPath = ""
	}

	for _, cmd := range cmds {
		if n := s.exec(cmd); n != nil {
			out = append(out, *n)
		}
	}
	return out
}

// refreshAnchor re-resolves a detached anchor before a key press. It
// reports false when the anchor cannot be found again and k is a move,
// which makes the move a no-op.
func (s *Selector) refreshAnchor(k Key) bool {
	n, ok := s.current().(Navigating)
	if !ok || n.Anchor.Attached() || k.Key == pagesnip.KeyEscape {
		return true
	}

	el, err := csspath.Resolve(s.Document, s.anchorPath)
	if err != nil || !selectable(el) {
		s.logger().Debug("anchor vanished", "path", s.anchorPath, "key", k.Key)
		return k.Key == pagesnip.KeyEnter
	}
	s.state = Navigating{Anchor: el}
	ledger := s.ledgerOrNew()
	ledger.ReleaseAll()
	ledger.Acquire(el, s.HighlightStyle)
	return true
}

// exec must be called with s.mu held.
func (s *Selector) exec(cmd Command) *pagesnip.Notification {
	switch cmd := cmd.(type) {
	case Attach:
		if set := cmd.Set &^ s.attached; set != 0 {
			s.Surface.Attach(set, s.HandleEvent)
			s.attached |= set
		}
	case Detach:
		if set := cmd.Set & s.attached; set != 0 {
			s.Surface.Detach(set)
			s.attached &^= set
		}
	case SetCursor:
		s.Surface.SetCursor(cmd.Cursor)
	case ShowStatus:
		s.Surface.ShowStatus(cmd.Message)
	case Highlight:
		s.ledgerOrNew().Acquire(cmd.Element, s.HighlightStyle)
	case Release:
		if s.ledger != nil {
			s.ledger.ReleaseAll()
		}
	case ScheduleUpdate:
		s.schedule(cmd.Element)
	case CancelUpdate:
		s.cancelPending()
	case Emit:
		n := pagesnip.Notification{Type: cmd.Type}
		if cmd.Element != nil {
			n.Data = s.data(cmd.Element)
		}
		return &n
	}
	return nil
}

// cleanup cancels the pending update, detaches every listener and releases
// every highlight. It is safe to repeat.
func (s *Selector) cleanup() {
	s.cancelPending()
	if s.attached != 0 {
		s.Surface.Detach(s.attached)
		s.attached = 0
	}
	if s.ledger != nil {
		s.ledger.ReleaseAll()
	}
}

func (s *Selector) schedule(el pagesnip.Element) {
	s.cancelPending()
	gen := s.gen

	afterFunc := s.AfterFunc
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	s.pending = afterFunc(s.Debounce, func() {
		s.fire(gen, el)
	})
}

func (s *Selector) cancelPending() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}

// fire sends the update scheduled as generation gen. A nil el means the
// current anchor. Stale generations are dropped.
func (s *Selector) fire(gen uint64, el pagesnip.Element) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	n, ok := s.current().(Navigating)
	if !ok {
		s.mu.Unlock()
		return
	}
	if el == nil {
		el = n.Anchor
	}
	s.pending = nil
	s.gen++
	data := s.data(el)
	s.mu.Unlock()

	s.send([]pagesnip.Notification{{Type: pagesnip.NotifyElementDataUpdate, Data: data}})
}

// data converts el for a notification. Conversion failures are logged and
// leave only the path.
func (s *Selector) data(el pagesnip.Element) *pagesnip.ElementData {
	d := &pagesnip.ElementData{Path: csspath.Generate(el)}
	if s.Converter == nil {
		return d
	}
	c, err := s.Converter.ConvertElement(el)
	if err != nil {
		s.logger().Warn("element conversion failed", "path", d.Path, "error", err)
		return d
	}
	d.HTML = c.HTML
	d.Markdown = c.Markdown
	d.Slug = c.Slug
	return d
}

func (s *Selector) send(out []pagesnip.Notification) {
	if s.Notifier == nil {
		return
	}
	for _, n := range out {
		if err := s.Notifier.Notify(n); err != nil {
			s.logger().Error("notify failed", "type", n.Type, "error", err)
		}
	}
}

func (s *Selector) current() State {
	if s.state == nil {
		return Idle{}
	}
	return s.state
}

func (s *Selector) ledgerOrNew() *Ledger {
	if s.ledger == nil {
		s.ledger = NewLedger()
	}
	return s.ledger
}

func (s *Selector) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
