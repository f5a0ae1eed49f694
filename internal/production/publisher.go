package production

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/statelab/pollstate/internal/primitives"
)

// CommitNotice is delivered to subscribers after each commit.
type CommitNotice struct {
	Tick uint64
	Cell string
	View primitives.View
	At   time.Time
}

// Hub fans commit notices out to subscriber channels. Publish never blocks:
// a subscriber that cannot keep up loses notices rather than stalling the
// poll loop.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan CommitNotice
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan CommitNotice)}
}

// Subscribe registers a subscriber with the given buffer size and returns
// its id and receive channel. Unsubscribe with the returned id; the channel
// is closed then.
func (h *Hub) Subscribe(buffer int) (string, <-chan CommitNotice) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan CommitNotice, buffer)
	id := uuid.NewString()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish delivers the notice to every subscriber, dropping on backpressure.
func (h *Hub) Publish(notice CommitNotice) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- notice:
		default:
			// Non-blocking drop
		}
	}
}

// Close removes all subscribers and closes their channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
