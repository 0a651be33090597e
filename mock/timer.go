package mock

import (
	"sync"
	"time"
)

// Scheduler replaces time.AfterFunc with manually fired timers.
type Scheduler struct {
	mu     sync.Mutex
	timers []*Timer
}

// AfterFunc records a timer for f. Nothing runs until Fire is called.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Timer{Delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Timers returns every timer scheduled so far.
func (s *Scheduler) Timers() []*Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Timer(nil), s.timers...)
}

// Pending returns the timers that have neither fired nor been stopped.
func (s *Scheduler) Pending() []*Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*Timer
	for _, t := range s.timers {
		if t.Active() {
			pending = append(pending, t)
		}
	}
	return pending
}

// FireAll fires every pending timer in scheduling order.
// It returns the number of timers fired.
func (s *Scheduler) FireAll() int {
	n := 0
	for _, t := range s.Pending() {
		if t.Fire() {
			n++
		}
	}
	return n
}

// Timer is a manually fired timer.
type Timer struct {
	Delay time.Duration

	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

// Stop prevents the timer from firing. It reports whether the call stopped
// a pending timer.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the timer function unless the timer was stopped or already fired.
// It reports whether the function ran.
func (t *Timer) Fire() bool {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	f := t.f
	t.mu.Unlock()

	f()
	return true
}

// Active reports whether the timer is still pending.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && !t.fired
}
