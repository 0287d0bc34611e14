package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "verihub/internal/platform/net"
	"verihub/internal/platform/net/middleware"
)

func TestTabContext_SetsTabOnContext(t *testing.T) {
	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.TabID(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/messages", nil)
	req.Header.Set(middleware.TabHeader, "tab-42")
	rr := httptest.NewRecorder()

	middleware.TabContext()(h).ServeHTTP(rr, req)

	if seen != "tab-42" {
		t.Fatalf("expected tab-42 got %q", seen)
	}
}

func TestTabContext_MissingHeaderIsEmpty(t *testing.T) {
	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.TabID(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/messages", nil)
	rr := httptest.NewRecorder()

	middleware.TabContext()(h).ServeHTTP(rr, req)

	if seen != "" {
		t.Fatalf("expected empty tab id got %q", seen)
	}
}
