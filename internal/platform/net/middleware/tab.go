package middleware

import (
	"net/http"

	"verihub/internal/platform/logger"
	pnet "verihub/internal/platform/net"
)

// TabHeader carries the originating browser tab id on API requests
const TabHeader = "X-Verihub-Tab"

// TabContext lifts the tab id header onto the request context and the
// request scoped logger. A missing header is fine; handlers that need a
// tab id validate it themselves
func TabContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tabID := r.Header.Get(TabHeader)
			ctx := r.Context()
			reqID := pnet.RequestID(ctx)
			ctx = pnet.WithRequest(ctx, reqID, tabID)
			ctx = logger.WithRequest(ctx, reqID, tabID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
