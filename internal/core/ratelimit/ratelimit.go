// Package ratelimit tracks per tab request windows for analysis preflight
package ratelimit

import (
	"sync"
	"time"
)

const (
	defaultMax    = 3
	defaultWindow = 60 * time.Second
)

// Options bounds a window
type Options struct {
	// Max requests tolerated inside Window before the tab is limited
	Max int
	// Window is measured from the most recent recorded request
	Window time.Duration
}

type entry struct {
	count int
	last  time.Time
}

// Limiter counts requests per tab inside a rolling window.
// A tab that has been quiet longer than the window starts fresh
type Limiter struct {
	mu   sync.Mutex
	opts Options
	tabs map[string]*entry
	now  func() time.Time
}

// New returns a Limiter with defaults applied
func New(opts Options) *Limiter {
	if opts.Max <= 0 {
		opts.Max = defaultMax
	}
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	return &Limiter{
		opts: opts,
		tabs: make(map[string]*entry),
		now:  time.Now,
	}
}

// Limited reports whether tab has hit the window cap.
// A stale window is dropped here so a quiet tab is never penalized for
// old traffic
func (l *Limiter) Limited(tab string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.tabs[tab]
	if !ok {
		return false
	}
	if l.now().Sub(e.last) > l.opts.Window {
		delete(l.tabs, tab)
		return false
	}
	return e.count >= l.opts.Max
}

// Record counts one request against tab and restarts its quiet timer
func (l *Limiter) Record(tab string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.tabs[tab]
	if !ok || now.Sub(e.last) > l.opts.Window {
		l.tabs[tab] = &entry{count: 1, last: now}
		return
	}
	e.count++
	e.last = now
}

// Clear drops all state for tab, used when the tab goes away
func (l *Limiter) Clear(tab string) {
	l.mu.Lock()
	delete(l.tabs, tab)
	l.mu.Unlock()
}

// Tracked returns how many tabs currently hold a window
func (l *Limiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tabs)
}
