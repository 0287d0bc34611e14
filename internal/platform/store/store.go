// Package store provides a small keyed slot store with change notification.
// Slots hold the shared state that panels and observers synchronize on
package store

import (
	"context"
	"fmt"

	perr "verihub/internal/platform/errors"
)

// Well known slot keys
const (
	// SlotLatestReport holds the most recent completed analysis report
	SlotLatestReport = "latest_report"
	// SlotCurrentReport holds the report the panel is currently displaying
	SlotCurrentReport = "current_report"
	// SlotPanelBadge holds a pending badge payload when the panel could not be opened
	SlotPanelBadge = "panel_badge"
	// SlotPanelOpen is pulsed to ask an attached panel host to raise itself
	SlotPanelOpen = "panel_open"
)

// Event describes a slot change delivered to watchers
type Event struct {
	Key   string
	Value []byte
}

// KV is the slot store seam. Implementations are safe for concurrent use
type KV interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key and notifies watchers of key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// Watch streams change events for key until ctx is done.
	// The returned channel is closed when the watch ends. Watchers that
	// fall behind may miss intermediate events; consumers reconcile by
	// reading the slot
	Watch(ctx context.Context, key string) (<-chan Event, error)

	// Close releases backend resources
	Close(ctx context.Context) error
}

// Config selects and configures the backend
type Config struct {
	// Driver is "memory" or "postgres"
	Driver string

	PG PGConfig
}

// Open constructs the configured backend
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		return OpenPG(ctx, cfg.PG)
	default:
		return nil, perr.InvalidArgf("unknown store driver %q", cfg.Driver)
	}
}

// Update reads a slot, applies fn, and writes the result back.
// fn receives nil when the slot is absent
func Update(ctx context.Context, kv KV, key string, fn func(cur []byte) ([]byte, error)) error {
	cur, _, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, next)
}
