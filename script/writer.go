// Package script drives a selection session over JSON lines. Requests and
// simulated page events are read one per line; notifications, responses and
// status messages are written one per line.
package script

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/fwojciec/pagesnip"
)

// StatusType marks status lines in the output.
const StatusType = "status"

// Status is a transient message the page would show to the user.
type Status struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// EventResult reports an event that could not be delivered.
type EventResult struct {
	Event string `json:"event"`
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Ensure Writer implements pagesnip.Notifier at compile time.
var _ pagesnip.Notifier = (*Writer)(nil)

// Writer serializes output lines. It is safe for concurrent use, since
// debounced updates are sent from timer goroutines.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Notify writes a notification line.
func (w *Writer) Notify(n pagesnip.Notification) error {
	return w.write(n)
}

// WriteResponse writes a response line.
func (w *Writer) WriteResponse(resp *pagesnip.Response) error {
	return w.write(resp)
}

// WriteStatus writes a status line.
func (w *Writer) WriteStatus(message string) error {
	return w.write(Status{Type: StatusType, Message: message})
}

// WriteEventResult writes an event result line.
func (w *Writer) WriteEventResult(res EventResult) error {
	return w.write(res)
}

func (w *Writer) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(v)
}
