// Package service implements the per item analysis state machine
package service

import (
	"sync"
	"time"

	"verihub/internal/platform/logger"
	"verihub/internal/services/observer/domain"
)

// Terminal state hold times before the automatic return to idle
const (
	DefaultSuccessHold = 2 * time.Second
	DefaultErrorHold   = 5 * time.Second
)

// Options tunes the machine
type Options struct {
	SuccessHold time.Duration
	ErrorHold   time.Duration
}

func (o *Options) applyDefaults() {
	if o.SuccessHold <= 0 {
		o.SuccessHold = DefaultSuccessHold
	}
	if o.ErrorHold <= 0 {
		o.ErrorHold = DefaultErrorHold
	}
}

type entry struct {
	state   domain.State
	message string
	cancel  func()
}

// Machine tracks analysis state per content identity. Entries are created
// lazily and removed when they return to idle, so absence means idle.
// Safe for concurrent use
type Machine struct {
	mu    sync.Mutex
	items map[string]*entry
	opts  Options
	log   logger.Logger

	// schedule is the timer seam, returns a cancel func
	schedule func(d time.Duration, fn func()) func()
}

// New constructs the machine
func New(opts Options) *Machine {
	opts.applyDefaults()
	return &Machine{
		items: make(map[string]*entry),
		opts:  opts,
		log:   *logger.Named("observer"),
		schedule: func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		},
	}
}

// Begin attempts the idle to loading transition for identity. It reports
// whether a new dispatch should happen: a second Begin while the first is
// still loading is dropped
func (m *Machine) Begin(identity string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.items[identity]; ok {
		if e.state == domain.StateLoading {
			m.log.Debug().Str("identity", identity).Msg("begin dropped, already loading")
			return false
		}
		// re-entry from a held terminal state
		if e.cancel != nil {
			e.cancel()
		}
	}
	m.items[identity] = &entry{state: domain.StateLoading}
	return true
}

// Succeed moves identity to success and schedules the return to idle
func (m *Machine) Succeed(identity string) {
	m.settle(identity, domain.StateSuccess, "", m.opts.SuccessHold)
}

// Fail moves identity to error with a display message and schedules the
// return to idle
func (m *Machine) Fail(identity, message string) {
	m.settle(identity, domain.StateError, message, m.opts.ErrorHold)
}

// RecallHit moves identity straight from idle to success when a fresh
// cached result is redisplayed without a dispatch. A loading identity is
// left alone, the in-flight outcome wins
func (m *Machine) RecallHit(identity string) bool {
	m.mu.Lock()
	if e, ok := m.items[identity]; ok && e.state == domain.StateLoading {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()
	m.settle(identity, domain.StateSuccess, "", m.opts.SuccessHold)
	return true
}

func (m *Machine) settle(identity string, s domain.State, message string, hold time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.items[identity]; ok && e.cancel != nil {
		e.cancel()
	}
	e := &entry{state: s, message: message}
	e.cancel = m.schedule(hold, func() { m.expire(identity, e) })
	m.items[identity] = e
}

// expire returns identity to idle unless the entry was superseded
func (m *Machine) expire(identity string, who *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.items[identity]; ok && cur == who {
		delete(m.items, identity)
	}
}

// State returns the current state for identity, idle when untracked
func (m *Machine) State(identity string) domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.items[identity]; ok {
		return e.state
	}
	return domain.StateIdle
}

// Affordance returns the rendering for identity's current state
func (m *Machine) Affordance(identity string) domain.Affordance {
	m.mu.Lock()
	var (
		s   = domain.StateIdle
		msg string
	)
	if e, ok := m.items[identity]; ok {
		s = e.state
		msg = e.message
	}
	m.mu.Unlock()
	return domain.AffordanceFor(s, msg)
}

// Tracked returns how many identities currently hold non idle state
func (m *Machine) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
