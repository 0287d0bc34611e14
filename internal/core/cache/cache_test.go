package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestDedup_HitWithinTTL(t *testing.T) {
	d := NewDedup[string](0)
	c := &fakeClock{at: time.Unix(1_700_000_000, 0)}
	d.now = c.now

	d.Put("k", "v")
	c.at = c.at.Add(4 * time.Minute)

	got, ok := d.Get("k")
	if !ok || got != "v" {
		t.Fatalf("expected hit within TTL, ok=%v got=%q", ok, got)
	}
}

func TestDedup_StaleEntryDeletedOnRead(t *testing.T) {
	d := NewDedup[string](0)
	c := &fakeClock{at: time.Unix(1_700_000_000, 0)}
	d.now = c.now

	d.Put("k", "v")
	c.at = c.at.Add(5*time.Minute + time.Second)

	if _, ok := d.Get("k"); ok {
		t.Fatal("expected miss past TTL")
	}
	if d.Len() != 0 {
		t.Fatalf("stale entry must be dropped, len=%d", d.Len())
	}
}

func TestDedup_PutRestartsTTL(t *testing.T) {
	d := NewDedup[string](0)
	c := &fakeClock{at: time.Unix(1_700_000_000, 0)}
	d.now = c.now

	d.Put("k", "v1")
	c.at = c.at.Add(4 * time.Minute)
	d.Put("k", "v2")
	c.at = c.at.Add(4 * time.Minute)

	got, ok := d.Get("k")
	if !ok || got != "v2" {
		t.Fatalf("rewrite must refresh the clock, ok=%v got=%q", ok, got)
	}
}

func TestHistory_EvictsOldestInsertion(t *testing.T) {
	h := NewHistory[int](0, 0)

	for i := 0; i < 10; i++ {
		h.Put(fmt.Sprintf("k%d", i), i)
	}
	if h.Len() != 10 {
		t.Fatalf("expected full history, len=%d", h.Len())
	}

	// 11th insert drops the oldest
	h.Put("k10", 10)
	if h.Len() != 10 {
		t.Fatalf("capacity must hold at 10, len=%d", h.Len())
	}
	if _, ok := h.Get("k0"); ok {
		t.Fatal("oldest insertion must be evicted")
	}
	if _, ok := h.Get("k1"); !ok {
		t.Fatal("second oldest must survive")
	}
	if _, ok := h.Get("k10"); !ok {
		t.Fatal("new entry must be present")
	}
}

func TestHistory_UpdateKeepsQueuePosition(t *testing.T) {
	h := NewHistory[int](3, 0)

	h.Put("a", 1)
	h.Put("b", 2)
	h.Put("c", 3)

	// updating "a" must not move it to the back
	h.Put("a", 11)
	h.Put("d", 4) // evicts "a", still the oldest insertion

	if _, ok := h.Get("a"); ok {
		t.Fatal("updated key keeps its position and evicts first")
	}
	if got, ok := h.Get("b"); !ok || got != 2 {
		t.Fatalf("expected b to survive, ok=%v got=%d", ok, got)
	}
}

func TestHistory_LazyTTLEvictsOnRead(t *testing.T) {
	h := NewHistory[int](0, 0)
	c := &fakeClock{at: time.Unix(1_700_000_000, 0)}
	h.now = c.now

	h.Put("old", 1)
	c.at = c.at.Add(30 * time.Minute)
	h.Put("young", 2)
	c.at = c.at.Add(31 * time.Minute) // old is 61m, young is 31m

	if _, ok := h.Get("old"); ok {
		t.Fatal("expected miss past one hour")
	}
	if got, ok := h.Get("young"); !ok || got != 2 {
		t.Fatalf("young entry must survive, ok=%v got=%d", ok, got)
	}
	// expired entry freed a slot in the queue too
	if keys := h.Keys(); len(keys) != 1 || keys[0] != "young" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

type fakeClock struct{ at time.Time }

func (f *fakeClock) now() time.Time { return f.at }
