package mock

import (
	"sync"

	"github.com/fwojciec/pagesnip"
)

var _ pagesnip.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of pagesnip.Notifier.
// With NotifyFn unset it records every notification and returns nil.
type Notifier struct {
	NotifyFn func(n pagesnip.Notification) error

	mu   sync.Mutex
	sent []pagesnip.Notification
}

func (m *Notifier) Notify(n pagesnip.Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()

	if m.NotifyFn != nil {
		return m.NotifyFn(n)
	}
	return nil
}

// Sent returns a copy of the recorded notifications.
func (m *Notifier) Sent() []pagesnip.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pagesnip.Notification(nil), m.sent...)
}

// Types returns the types of the recorded notifications in order.
func (m *Notifier) Types() []pagesnip.NotificationType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]pagesnip.NotificationType, len(m.sent))
	for i, n := range m.sent {
		types[i] = n.Type
	}
	return types
}
