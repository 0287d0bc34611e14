// Package module wires the gateway using modkit
package module

import (
	"net/http"

	modkit "verihub/internal/modkit"
	"verihub/internal/modkit/httpkit"

	adomain "verihub/internal/services/analysis/domain"
	ghttp "verihub/internal/services/gateway/http"
	gsvc "verihub/internal/services/gateway/service"
	pdomain "verihub/internal/services/panel/domain"
)

// Ports carries the cross module dependencies the gateway needs
type Ports struct {
	Analysis adomain.ServicePort
	Panel    pdomain.ServicePort
}

// Module implements the gateway module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *gsvc.Service
}

// New constructs the gateway module. Ports is required
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("gateway"),
		modkit.WithPrefix("/gateway"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Analysis == nil || ports.Panel == nil {
		panic("gateway module requires analysis and panel ports")
	}

	svc := gsvc.New(ports.Analysis, ports.Panel)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ghttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the router service for in process wiring
func (m *Module) Service() *gsvc.Service { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns nil, the gateway consumes ports rather than exposing them
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
