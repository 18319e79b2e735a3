package events

import (
	"context"
	"sync"

	"filmoasis/src/metrics"
	events "filmoasis/src/modules/events/models"
)

const DefaultBuffer = 64

// Hub fans catalog events out to in-process subscribers. A subscriber whose
// buffer is full misses the event; publishers never block.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan events.Event
	nextID uint64
	buffer int
	closed bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[uint64]chan events.Event),
		buffer: buffer,
	}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan events.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan events.Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	metrics.EventSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
		metrics.EventSubscribers.Dec()
	}
}

func (h *Hub) Publish(_ context.Context, e events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
			metrics.EventsDropped.WithLabelValues("hub").Inc()
		}
	}
	metrics.EventsPublished.WithLabelValues(string(e.Type), "hub").Inc()
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
		metrics.EventSubscribers.Dec()
	}
}
