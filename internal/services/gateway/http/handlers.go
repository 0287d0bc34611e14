// Package http provides http transport for the gateway
package http

import (
	stdhttp "net/http"

	"verihub/internal/modkit/httpkit"
	pnet "verihub/internal/platform/net"
	"verihub/internal/services/gateway/domain"
	gsvc "verihub/internal/services/gateway/service"
)

// Register mounts the router
func Register(r httpkit.Router, s *gsvc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Message](r, "/messages", h.dispatch)
}

type handlers struct{ svc *gsvc.Service }

// @Summary Dispatch one inbound message and return its single response
// @Tags gateway
// @Accept json
// @Produce json
// @Param message body domain.Message true "inbound message"
// @Success 200 {object} domain.Response "ok"
// @Router /gateway/messages [post]
func (h *handlers) dispatch(r *stdhttp.Request, msg domain.Message) (any, error) {
	tabID := pnet.TabID(r.Context())
	return h.svc.Dispatch(r.Context(), tabID, msg), nil
}
