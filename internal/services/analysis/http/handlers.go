// Package http provides http transport for analysis
package http

import (
	stdhttp "net/http"

	"verihub/internal/modkit/httpkit"
	perr "verihub/internal/platform/errors"
	"verihub/internal/services/analysis/domain"

	"github.com/go-chi/chi/v5"
)

// Register mounts the router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/reports/{id}", h.report)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Fetch a recently completed analysis report
// @Tags analysis
// @Produce json
// @Param id path string true "analysis id"
// @Success 200 {object} verif.Report "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /analysis/reports/{id} [get]
func (h *handlers) report(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, perr.InvalidArgf("missing analysis id")
	}
	report, ok := h.svc.Recall(r.Context(), id)
	if !ok {
		return nil, perr.NotFoundf("analysis %s not found", id)
	}
	return report, nil
}
