package store_test

import (
	"context"
	"testing"
	"time"

	"verihub/internal/platform/store"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	if _, ok, err := kv.Get(ctx, store.SlotLatestReport); err != nil || ok {
		t.Fatalf("expected miss on empty store, ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, store.SlotLatestReport, []byte(`{"id":"r1"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := kv.Get(ctx, store.SlotLatestReport)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(got) != `{"id":"r1"}` {
		t.Fatalf("unexpected value %q", got)
	}

	if err := kv.Delete(ctx, store.SlotLatestReport); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, store.SlotLatestReport); ok {
		t.Fatal("expected miss after delete")
	}
	// deleting an absent key is fine
	if err := kv.Delete(ctx, store.SlotLatestReport); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	if err := kv.Set(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, _ := kv.Get(ctx, "k")
	got[0] = 'x'

	again, _, _ := kv.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemory_WatchDeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv := store.NewMemory()
	events, err := kv.Watch(ctx, store.SlotCurrentReport)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := kv.Set(ctx, store.SlotCurrentReport, []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	// events on other keys must not be delivered
	if err := kv.Set(ctx, store.SlotPanelBadge, []byte("noise")); err != nil {
		t.Fatalf("set: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Key != store.SlotCurrentReport || string(ev.Value) != "v1" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemory_WatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	kv := store.NewMemory()

	events, err := kv.Watch(ctx, "k")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, open := <-events:
		if open {
			t.Fatal("expected channel to close without events")
		}
	case <-time.After(time.Second):
		t.Fatal("expected channel to close after cancel")
	}

	// writes after the watch ended must not panic
	if err := kv.Set(context.Background(), "k", []byte("late")); err != nil {
		t.Fatalf("set after cancel: %v", err)
	}
}

func TestOpen_SelectsMemoryDriver(t *testing.T) {
	kv, err := store.Open(context.Background(), store.Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := kv.(*store.Memory); !ok {
		t.Fatalf("expected *store.Memory got %T", kv)
	}

	if _, err := store.Open(context.Background(), store.Config{Driver: "bogus"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	err := store.Update(ctx, kv, "counter", func(cur []byte) ([]byte, error) {
		if cur != nil {
			t.Fatalf("expected nil current for absent slot, got %q", cur)
		}
		return []byte("1"), nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	err = store.Update(ctx, kv, "counter", func(cur []byte) ([]byte, error) {
		if string(cur) != "1" {
			t.Fatalf("expected current 1 got %q", cur)
		}
		return []byte("2"), nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _, _ := kv.Get(ctx, "counter")
	if string(got) != "2" {
		t.Fatalf("expected 2 got %q", got)
	}
}
