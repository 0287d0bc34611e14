// Package cache holds the short lived result caches used to avoid duplicate
// upstream calls
package cache

import (
	"sync"
	"time"
)

// DefaultDedupTTL is how long a completed result short circuits repeats
const DefaultDedupTTL = 5 * time.Minute

type dedupEntry[V any] struct {
	value V
	at    time.Time
}

// Dedup remembers recent results by identity key for a short TTL.
// Reads drop stale entries so memory stays bounded by traffic
type Dedup[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]dedupEntry[V]
	now     func() time.Time
}

// NewDedup returns a Dedup with ttl applied, zero means DefaultDedupTTL
func NewDedup[V any](ttl time.Duration) *Dedup[V] {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &Dedup[V]{
		ttl:     ttl,
		entries: make(map[string]dedupEntry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key. A stale entry is deleted and
// reported as a miss
func (d *Dedup[V]) Get(key string) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero V
	e, ok := d.entries[key]
	if !ok {
		return zero, false
	}
	if d.now().Sub(e.at) > d.ttl {
		delete(d.entries, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, restarting its TTL
func (d *Dedup[V]) Put(key string, value V) {
	d.mu.Lock()
	d.entries[key] = dedupEntry[V]{value: value, at: d.now()}
	d.mu.Unlock()
}

// Delete removes key if present
func (d *Dedup[V]) Delete(key string) {
	d.mu.Lock()
	delete(d.entries, key)
	d.mu.Unlock()
}

// Len reports how many entries are held, stale ones included
func (d *Dedup[V]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
