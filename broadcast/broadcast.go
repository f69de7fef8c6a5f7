// Package broadcast provides an in-process fan-out Notifier for crawl events.
package broadcast

import (
	"sync"

	"github.com/mr-aymann/docuRAG"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind than this starts losing events.
const subscriberBuffer = 64

// Ensure Hub implements docurag.Notifier at compile time.
var _ docurag.Notifier = (*Hub)(nil)

// Hub fans events out to any number of subscribers. Publish never blocks:
// events to a subscriber with a full buffer are dropped, so a stalled
// consumer cannot back-pressure the crawl.
type Hub struct {
	mu   sync.Mutex
	subs map[chan docurag.Event]struct{}
}

// NewHub creates a new Hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan docurag.Event]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel.
func (h *Hub) Subscribe() <-chan docurag.Event {
	ch := make(chan docurag.Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch <-chan docurag.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub == ch {
			delete(h.subs, sub)
			close(sub)
			return
		}
	}
}

// Publish delivers the event to every subscriber that has buffer space.
func (h *Hub) Publish(event docurag.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub <- event:
		default:
			// Subscriber is not keeping up; drop rather than block.
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
