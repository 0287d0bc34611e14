package modkit_test

import (
	"net/http"
	"testing"

	"verihub/internal/modkit"
	"verihub/internal/modkit/httpkit"
)

func TestBuild_AppliesOptionsAndDefaults(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }

	b := modkit.Build(
		modkit.WithName("gateway"),
		modkit.WithPrefix("/gateway"),
		modkit.WithMiddlewares(mw),
		modkit.WithPorts("ports"),
	)

	if b.Name != "gateway" || b.Prefix != "/gateway" {
		t.Fatalf("unexpected build result %+v", b)
	}
	if len(b.Mw) != 1 {
		t.Fatalf("expected one middleware got %d", len(b.Mw))
	}
	if b.Ports != "ports" {
		t.Fatalf("unexpected ports %v", b.Ports)
	}
	// defaults never nil
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("expected default router hooks")
	}
	var r httpkit.Router
	if got := b.Subrouter(r); got != r {
		t.Fatal("default subrouter should be identity")
	}
}
