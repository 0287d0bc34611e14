package store

import (
	"context"
	"sync"
)

// Memory is an in process KV for single binary deployments and tests
type Memory struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers map[string]map[chan Event]struct{}
}

// NewMemory returns an empty memory store
func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string][]byte),
		watchers: make(map[string]map[chan Event]struct{}),
	}
}

// Get implements KV
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements KV
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cp

	// broadcast under the lock so no send can race a closing watcher;
	// sends never block, slow watchers miss events instead
	ev := Event{Key: key, Value: cp}
	for ch := range m.watchers[key] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Delete implements KV
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Watch implements KV
func (m *Memory) Watch(ctx context.Context, key string) (<-chan Event, error) {
	ch := make(chan Event, 16)

	m.mu.Lock()
	if m.watchers[key] == nil {
		m.watchers[key] = make(map[chan Event]struct{})
	}
	m.watchers[key][ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers[key], ch)
		close(ch)
		m.mu.Unlock()
	}()

	return ch, nil
}

// Close implements KV
func (m *Memory) Close(context.Context) error { return nil }
