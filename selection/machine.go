// Package selection implements interactive region selection: a pure state
// machine over hover, click and keyboard input, and a Selector that runs it
// against a page.
package selection

import "github.com/fwojciec/pagesnip"

// Status messages shown on the page.
const (
	HoverStatus      = "Hover to highlight an element, click to select it, Esc to cancel"
	NavigationStatus = "Arrow keys adjust the selection, Enter confirms, Esc cancels"
)

// AllListeners covers every listener group.
const AllListeners = pagesnip.HoverListeners | pagesnip.NavigationListeners

// State is one of Idle, Hovering or Navigating.
type State interface {
	Mode() pagesnip.Mode
	isState()
}

// Idle is the state with no session.
type Idle struct{}

// Hovering highlights the element under the pointer. Hovered is nil until
// the pointer enters an element.
type Hovering struct {
	Hovered pagesnip.Element
}

// Navigating keeps Anchor selected and moves it with the keyboard.
type Navigating struct {
	Anchor pagesnip.Element
}

func (Idle) Mode() pagesnip.Mode       { return pagesnip.ModeIdle }
func (Hovering) Mode() pagesnip.Mode   { return pagesnip.ModeHovering }
func (Navigating) Mode() pagesnip.Mode { return pagesnip.ModeNavigating }

func (Idle) isState()       {}
func (Hovering) isState()   {}
func (Navigating) isState() {}

// Input is an event fed to Transition.
type Input interface {
	isInput()
}

// Start begins a session.
type Start struct{}

// Stop ends a session without selecting anything.
type Stop struct{}

// PointerEnter reports the pointer entering Target.
type PointerEnter struct {
	Target pagesnip.Element
}

// Click reports a click on Target.
type Click struct {
	Target pagesnip.Element
}

// Key reports a key press, named like pagesnip.KeyUp.
type Key struct {
	Key string
}

// Preselect enters Navigating with Element selected, from any state.
type Preselect struct {
	Element pagesnip.Element
}

// Select confirms Element immediately, from any state.
type Select struct {
	Element pagesnip.Element
}

// Confirm confirms the current anchor, like pressing Enter.
type Confirm struct{}

func (Start) isInput()        {}
func (Stop) isInput()         {}
func (PointerEnter) isInput() {}
func (Click) isInput()        {}
func (Key) isInput()          {}
func (Preselect) isInput()    {}
func (Select) isInput()       {}
func (Confirm) isInput()      {}

// Command is a side effect requested by Transition.
type Command interface {
	isCommand()
}

// Attach attaches the listener groups in Set.
type Attach struct {
	Set pagesnip.ListenerSet
}

// Detach detaches the listener groups in Set.
type Detach struct {
	Set pagesnip.ListenerSet
}

// SetCursor changes the page cursor hint.
type SetCursor struct {
	Cursor string
}

// ShowStatus shows a status message.
type ShowStatus struct {
	Message string
}

// Highlight highlights Element and records its previous style.
type Highlight struct {
	Element pagesnip.Element
}

// Release restores every highlighted element.
type Release struct{}

// ScheduleUpdate replaces any pending debounced update with one for Element.
type ScheduleUpdate struct {
	Element pagesnip.Element
}

// CancelUpdate drops the pending debounced update.
type CancelUpdate struct{}

// Emit sends a notification. Element is set for element-selected.
type Emit struct {
	Type    pagesnip.NotificationType
	Element pagesnip.Element
}

func (Attach) isCommand()         {}
func (Detach) isCommand()         {}
func (SetCursor) isCommand()      {}
func (ShowStatus) isCommand()     {}
func (Highlight) isCommand()      {}
func (Release) isCommand()        {}
func (ScheduleUpdate) isCommand() {}
func (CancelUpdate) isCommand()   {}
func (Emit) isCommand()           {}

// Transition returns the state following s on in, and the commands that
// carry it out. Inputs that do not apply to s leave it unchanged and return
// no commands.
//
// Transition only reads the page. Every path back to Idle cancels the
// pending update, detaches listeners and releases highlights, in that order.
func Transition(s State, in Input) (State, []Command) {
	if s == nil {
		s = Idle{}
	}

	switch in := in.(type) {
	case Start:
		if _, ok := s.(Idle); !ok {
			return s, nil
		}
		return Hovering{}, []Command{
			Attach{Set: pagesnip.HoverListeners},
			SetCursor{Cursor: pagesnip.CursorCrosshair},
			ShowStatus{Message: HoverStatus},
		}

	case Stop:
		if _, ok := s.(Idle); ok {
			return s, nil
		}
		return cancel()

	case PointerEnter:
		h, ok := s.(Hovering)
		if !ok || !selectable(in.Target) || in.Target == h.Hovered {
			return s, nil
		}
		return Hovering{Hovered: in.Target}, []Command{
			Release{},
			Highlight{Element: in.Target},
		}

	case Click:
		h, ok := s.(Hovering)
		if !ok || !selectable(in.Target) {
			return s, nil
		}
		cmds := []Command{
			Detach{Set: pagesnip.HoverListeners},
			Attach{Set: pagesnip.NavigationListeners},
		}
		if in.Target != h.Hovered {
			cmds = append(cmds, Release{}, Highlight{Element: in.Target})
		}
		cmds = append(cmds,
			ShowStatus{Message: NavigationStatus},
			ScheduleUpdate{Element: in.Target},
		)
		return Navigating{Anchor: in.Target}, cmds

	case Key:
		return key(s, in.Key)

	case Preselect:
		if !selectable(in.Element) {
			return s, nil
		}
		var cmds []Command
		switch s.(type) {
		case Idle:
			cmds = append(cmds,
				Attach{Set: pagesnip.NavigationListeners},
				SetCursor{Cursor: pagesnip.CursorCrosshair},
			)
		case Hovering:
			cmds = append(cmds,
				Detach{Set: pagesnip.HoverListeners},
				Attach{Set: pagesnip.NavigationListeners},
			)
		}
		cmds = append(cmds,
			Release{},
			Highlight{Element: in.Element},
			ShowStatus{Message: NavigationStatus},
			ScheduleUpdate{Element: in.Element},
		)
		return Navigating{Anchor: in.Element}, cmds

	case Select:
		if !selectable(in.Element) {
			return s, nil
		}
		return confirm(in.Element)

	case Confirm:
		n, ok := s.(Navigating)
		if !ok {
			return s, nil
		}
		return confirm(n.Anchor)
	}

	return s, nil
}

func key(s State, k string) (State, []Command) {
	switch s := s.(type) {
	case Hovering:
		if k == pagesnip.KeyEscape {
			return cancel()
		}
	case Navigating:
		switch k {
		case pagesnip.KeyEscape:
			return cancel()
		case pagesnip.KeyEnter:
			return confirm(s.Anchor)
		}
		target := Move(s.Anchor, k)
		if !selectable(target) || !target.Attached() {
			return s, nil
		}
		return Navigating{Anchor: target}, []Command{
			Release{},
			Highlight{Element: target},
			ScheduleUpdate{Element: target},
		}
	}
	return s, nil
}

// Move returns the element an arrow key moves to from el, or nil.
func Move(el pagesnip.Element, k string) pagesnip.Element {
	if el == nil {
		return nil
	}
	switch k {
	case pagesnip.KeyUp:
		return el.Parent()
	case pagesnip.KeyDown:
		if children := el.Children(); len(children) > 0 {
			return children[0]
		}
	case pagesnip.KeyLeft:
		return el.PrevSibling()
	case pagesnip.KeyRight:
		return el.NextSibling()
	}
	return nil
}

func cancel() (State, []Command) {
	return Idle{}, append(exit(), Emit{Type: pagesnip.NotifySelectionStopped})
}

func confirm(el pagesnip.Element) (State, []Command) {
	return Idle{}, append(exit(),
		Emit{Type: pagesnip.NotifyElementSelected, Element: el},
		Emit{Type: pagesnip.NotifyNavigationExited},
	)
}

func exit() []Command {
	return []Command{
		CancelUpdate{},
		Detach{Set: AllListeners},
		Release{},
		SetCursor{Cursor: pagesnip.CursorDefault},
	}
}

// selectable reports whether el may be highlighted or selected.
func selectable(el pagesnip.Element) bool {
	return el != nil && !pagesnip.IsRootContainer(el)
}
