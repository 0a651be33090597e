package pagesnip

// Mode is the state of an interactive selection session.
type Mode int

// Selection modes.
const (
	ModeIdle Mode = iota
	ModeHovering
	ModeNavigating
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHovering:
		return "hovering"
	case ModeNavigating:
		return "navigating"
	}
	return "unknown"
}

// Action is an inbound command name.
type Action string

// Inbound command vocabulary.
const (
	ActionStartSelection Action = "start-selection"
	ActionStopSelection  Action = "stop-selection"
	ActionSmartSelect    Action = "smart-select"
	ActionApplyPath      Action = "apply-path"
)

// Request is an inbound command from the control surface.
type Request struct {
	Action Action `json:"action"`
	Path   string `json:"path,omitempty"`
}

// Response reports the outcome of a Request.
type Response struct {
	Action Action `json:"action"`
	OK     bool   `json:"ok"`
	Path   string `json:"path,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}
