package mock

import (
	"sync"

	"github.com/mr-aymann/docuRAG"
)

var _ docurag.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of docurag.Notifier that records every
// published event. Safe for concurrent use.
type Notifier struct {
	mu     sync.Mutex
	events []docurag.Event
}

func (n *Notifier) Publish(event docurag.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns a copy of the events published so far.
func (n *Notifier) Events() []docurag.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]docurag.Event, len(n.events))
	copy(out, n.events)
	return out
}

// EventsOfType returns the published events with the given type.
func (n *Notifier) EventsOfType(eventType string) []docurag.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []docurag.Event
	for _, e := range n.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
