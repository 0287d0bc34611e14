package ratelimit

import (
	"testing"
	"time"
)

// fixed clock helper, advance by mutating base
type clock struct{ at time.Time }

func (c *clock) now() time.Time { return c.at }

func newTestLimiter(opts Options) (*Limiter, *clock) {
	l := New(opts)
	c := &clock{at: time.Unix(1_700_000_000, 0)}
	l.now = c.now
	return l, c
}

func TestLimiter_AllowsUnderCap(t *testing.T) {
	l, _ := newTestLimiter(Options{})

	for i := 0; i < 2; i++ {
		if l.Limited("tab1") {
			t.Fatalf("limited after %d requests", i)
		}
		l.Record("tab1")
	}
	if l.Limited("tab1") {
		t.Fatal("two requests must not trip the default cap of three")
	}
}

func TestLimiter_LimitsAtCapWithinWindow(t *testing.T) {
	l, c := newTestLimiter(Options{})

	for i := 0; i < 3; i++ {
		l.Record("tab7")
		c.at = c.at.Add(time.Second)
	}
	if !l.Limited("tab7") {
		t.Fatal("three requests inside the window must be limited")
	}
	// other tabs are independent
	if l.Limited("tab8") {
		t.Fatal("unrelated tab must not be limited")
	}
}

func TestLimiter_StaleWindowResets(t *testing.T) {
	l, c := newTestLimiter(Options{})

	for i := 0; i < 3; i++ {
		l.Record("tab7")
	}
	if !l.Limited("tab7") {
		t.Fatal("expected limited inside window")
	}

	// just past the window measured from the last request
	c.at = c.at.Add(61 * time.Second)
	if l.Limited("tab7") {
		t.Fatal("stale window must reset on check")
	}
	if l.Tracked() != 0 {
		t.Fatalf("stale entry should be dropped, tracked=%d", l.Tracked())
	}

	// fresh window counts from one again
	l.Record("tab7")
	if l.Limited("tab7") {
		t.Fatal("single request after reset must not be limited")
	}
}

func TestLimiter_RecordAfterQuietStartsFresh(t *testing.T) {
	l, c := newTestLimiter(Options{})

	l.Record("tab1")
	l.Record("tab1")
	c.at = c.at.Add(2 * time.Minute)

	// stale entry replaced, not incremented
	l.Record("tab1")
	l.Record("tab1")
	if l.Limited("tab1") {
		t.Fatal("two requests in the fresh window must not be limited")
	}
}

func TestLimiter_RecordSlidesTheWindow(t *testing.T) {
	l, c := newTestLimiter(Options{})

	l.Record("tab1")
	l.Record("tab1")
	c.at = c.at.Add(50 * time.Second)
	l.Record("tab1") // keeps the window alive, last=now

	c.at = c.at.Add(30 * time.Second) // 80s after first, 30s after last
	if !l.Limited("tab1") {
		t.Fatal("window is measured from the last request, expected limited")
	}
}

func TestLimiter_ClearDropsTab(t *testing.T) {
	l, _ := newTestLimiter(Options{})

	for i := 0; i < 3; i++ {
		l.Record("tab1")
	}
	if !l.Limited("tab1") {
		t.Fatal("expected limited before clear")
	}

	l.Clear("tab1")
	if l.Limited("tab1") {
		t.Fatal("cleared tab must start fresh")
	}
	// clearing an unknown tab is a no-op
	l.Clear("never-seen")
}

func TestLimiter_CustomOptions(t *testing.T) {
	l, _ := newTestLimiter(Options{Max: 1, Window: time.Second})

	l.Record("t")
	if !l.Limited("t") {
		t.Fatal("cap of one must limit after a single request")
	}
}
