package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification outcome.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Event is the payload delivered to the presentation layer. The core only
// reports outcomes; how they are rendered (toast, banner) is not its concern.
type Event struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier is the single-purpose result channel the core uses to report
// operation outcomes. Implementations perform no I/O decisions of their own
// beyond delivery; there is no internal state and no retry.
type Notifier interface {
	Emit(kind Kind, message string)
}

// NopNotifier is a no-op implementation for when no client is listening.
type NopNotifier struct{}

func (NopNotifier) Emit(kind Kind, message string) {}

// Recorder collects emitted events for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records the event.
func (r *Recorder) Emit(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: kind, Message: message, Timestamp: time.Now()})
}

// Events returns a snapshot of everything emitted so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event, if any.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}
