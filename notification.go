package pagesnip

// NotificationType identifies an outbound notification.
type NotificationType string

// Outbound notifications emitted by the selector.
const (
	NotifyElementSelected   NotificationType = "element-selected"
	NotifyElementDataUpdate NotificationType = "element-data-update"
	NotifySelectionStopped  NotificationType = "selection-stopped"
	NotifyNavigationExited  NotificationType = "navigation-exited"
)

// ElementData is the portable form of a selected element.
type ElementData struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Slug     string `json:"slug"`
	Path     string `json:"path"`
}

// Notification is a message to the control surface.
// Data is nil for selection-stopped and navigation-exited.
type Notification struct {
	Type NotificationType `json:"type"`
	Data *ElementData     `json:"data,omitempty"`
}

// Notifier delivers notifications to the control surface.
type Notifier interface {
	Notify(n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification) error

// Notify calls fn(n).
func (fn NotifierFunc) Notify(n Notification) error {
	return fn(n)
}
