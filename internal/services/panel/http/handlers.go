// Package http provides http transport for the panel surface
package http

import (
	stdhttp "net/http"

	"verihub/internal/modkit/httpkit"
	perr "verihub/internal/platform/errors"
	pnet "verihub/internal/platform/net"
	"verihub/internal/services/panel/domain"
	psvc "verihub/internal/services/panel/service"
)

// Register mounts the router
func Register(r httpkit.Router, s *psvc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/latest", h.latest)
	httpkit.Get(r, "/current", h.current)
	httpkit.PostJSON[domain.Update](r, "/current", h.setCurrent)
	httpkit.Get(r, "/badge", h.badge)
	httpkit.Delete(r, "/badge", h.clearBadge)
	httpkit.Post(r, "/open", h.open)
}

type handlers struct{ svc *psvc.Service }

// @Summary Read the most recent analysis update
// @Tags panel
// @Produce json
// @Success 200 {object} domain.Update "ok"
// @Failure 404 {object} httpkit.Envelope "no update published yet"
// @Router /panel/latest [get]
func (h *handlers) latest(r *stdhttp.Request) (any, error) {
	upd, ok, err := h.svc.Latest(r.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("no update published")
	}
	return upd, nil
}

// @Summary Read the update the panel is displaying
// @Tags panel
// @Produce json
// @Success 200 {object} domain.Update "ok"
// @Failure 404 {object} httpkit.Envelope "nothing displayed"
// @Router /panel/current [get]
func (h *handlers) current(r *stdhttp.Request) (any, error) {
	upd, ok, err := h.svc.Current(r.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("nothing displayed")
	}
	return upd, nil
}

// @Summary Record the update the panel is displaying
// @Tags panel
// @Accept json
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /panel/current [post]
func (h *handlers) setCurrent(r *stdhttp.Request, upd domain.Update) (any, error) {
	if err := h.svc.SetCurrent(r.Context(), upd); err != nil {
		return nil, err
	}
	return map[string]bool{"stored": true}, nil
}

// @Summary Read the pending panel badge
// @Tags panel
// @Produce json
// @Success 200 {object} domain.Badge "ok"
// @Failure 404 {object} httpkit.Envelope "no badge pending"
// @Router /panel/badge [get]
func (h *handlers) badge(r *stdhttp.Request) (any, error) {
	b, ok, err := h.svc.Badge(r.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("no badge pending")
	}
	return b, nil
}

// @Summary Clear the pending panel badge
// @Tags panel
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /panel/badge [delete]
func (h *handlers) clearBadge(r *stdhttp.Request) (any, error) {
	if err := h.svc.ClearBadge(r.Context()); err != nil {
		return nil, err
	}
	return map[string]bool{"cleared": true}, nil
}

// @Summary Request the panel to be raised for the calling tab
// @Tags panel
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /panel/open [post]
func (h *handlers) open(r *stdhttp.Request) (any, error) {
	if err := h.svc.Open(r.Context(), pnet.TabID(r.Context())); err != nil {
		return nil, err
	}
	return map[string]bool{"requested": true}, nil
}
