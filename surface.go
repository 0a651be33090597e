package pagesnip

// EventType identifies a page interaction event.
type EventType string

// Interaction events delivered by a Surface.
const (
	EventPointerEnter EventType = "pointerenter"
	EventClick        EventType = "click"
	EventKeyDown      EventType = "keydown"
)

// Navigation and terminal keys, named like DOM KeyboardEvent.key values.
const (
	KeyUp     = "ArrowUp"
	KeyDown   = "ArrowDown"
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Event is a single user interaction with the page.
type Event struct {
	Type   EventType
	Target Element // for pointer events
	Key    string  // for key events
}

// Listener receives events from a Surface.
type Listener func(Event)

// ListenerSet is a bitmask of listener groups.
type ListenerSet uint8

// Listener groups.
const (
	ListenPointer  ListenerSet = 1 << iota // pointer-enter
	ListenClick                            // click
	ListenCancel                           // Escape
	ListenNavigate                         // arrow keys and Enter

	// HoverListeners are attached while hovering.
	HoverListeners = ListenPointer | ListenClick | ListenCancel

	// NavigationListeners are attached while navigating.
	NavigationListeners = ListenNavigate | ListenCancel
)

// Has reports whether every group in other is in s.
func (s ListenerSet) Has(other ListenerSet) bool {
	return s&other == other
}

// Accepts reports whether an event is delivered by some group in s.
func (s ListenerSet) Accepts(ev Event) bool {
	switch ev.Type {
	case EventPointerEnter:
		return s&ListenPointer != 0
	case EventClick:
		return s&ListenClick != 0
	case EventKeyDown:
		switch ev.Key {
		case KeyEscape:
			return s&ListenCancel != 0
		case KeyUp, KeyDown, KeyLeft, KeyRight, KeyEnter:
			return s&ListenNavigate != 0
		}
	}
	return false
}

// Cursor hints shown while selecting.
const (
	CursorDefault   = ""
	CursorCrosshair = "crosshair"
)

// Surface is the page-side interaction layer: it delivers events to attached
// listeners and shows transient affordances (cursor, status message).
type Surface interface {
	// Attach registers fn for the listener groups in set.
	Attach(set ListenerSet, fn Listener)

	// Detach removes listeners for the groups in set.
	Detach(set ListenerSet)

	// SetCursor changes the page-wide cursor hint. CursorDefault restores it.
	SetCursor(cursor string)

	// ShowStatus shows a transient status message to the user.
	ShowStatus(message string)
}
