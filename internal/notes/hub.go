package notes

import "sync"

// hub fans snapshots out to subscribers. Each subscriber holds at most one
// pending snapshot; a newer one replaces it.
type hub[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
	closed bool
}

func newHub[T any]() *hub[T] {
	return &hub[T]{
		subs: make(map[int]chan T),
	}
}

func (h *hub[T]) add(initial T) (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan T, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	ch <- initial
	cancel := func() {
		h.mu.Lock()
		sub, ok := h.subs[id]
		if ok {
			delete(h.subs, id)
		}
		h.mu.Unlock()
		if ok {
			close(sub)
		}
	}
	return ch, cancel
}

func (h *hub[T]) broadcast(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		offerLatest(ch, value)
	}
}

func (h *hub[T]) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

func offerLatest[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
