package cache

import (
	"sync"
	"time"
)

// History defaults
const (
	DefaultHistoryCap = 10
	DefaultHistoryTTL = time.Hour
)

type histEntry[V any] struct {
	value V
	at    time.Time
}

// History is a small FIFO of completed results. Insertion order decides
// eviction; updating an existing key keeps its position. Entries older
// than the TTL are dropped lazily on read
type History[V any] struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	order []string
	items map[string]histEntry[V]
	now   func() time.Time
}

// NewHistory returns a History with capacity and ttl applied, zero means defaults
func NewHistory[V any](capacity int, ttl time.Duration) *History[V] {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	if ttl <= 0 {
		ttl = DefaultHistoryTTL
	}
	return &History[V]{
		cap:   capacity,
		ttl:   ttl,
		items: make(map[string]histEntry[V]),
		now:   time.Now,
	}
}

// Get returns the stored value for key. Expired entries are removed and
// reported as misses
func (h *History[V]) Get(key string) (V, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero V
	e, ok := h.items[key]
	if !ok {
		return zero, false
	}
	if h.now().Sub(e.at) > h.ttl {
		h.remove(key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key. A new key may evict the oldest insertion;
// an existing key is updated in place and keeps its queue position
func (h *History[V]) Put(key string, value V) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.items[key]; exists {
		h.items[key] = histEntry[V]{value: value, at: h.now()}
		return
	}

	h.items[key] = histEntry[V]{value: value, at: h.now()}
	h.order = append(h.order, key)
	if len(h.order) > h.cap {
		oldest := h.order[0]
		h.order = h.order[1:]
		delete(h.items, oldest)
	}
}

// Len reports how many entries are held, expired ones included
func (h *History[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Keys returns the current keys oldest first
func (h *History[V]) Keys() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// remove drops key from both the map and the order slice, callers hold the lock
func (h *History[V]) remove(key string) {
	delete(h.items, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			return
		}
	}
}
