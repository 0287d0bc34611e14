// Package module wires the panel surface using modkit
package module

import (
	"net/http"

	modkit "verihub/internal/modkit"
	"verihub/internal/modkit/httpkit"

	"verihub/internal/services/panel/domain"
	phttp "verihub/internal/services/panel/http"
	psvc "verihub/internal/services/panel/service"
)

// Module implements the panel module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *psvc.Service
}

// New constructs the panel module. Ports may inject a custom opener
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("panel"),
		modkit.WithPrefix("/panel"),
	}, opts...)...)

	var opener domain.OpenerPort
	if o, ok := b.Ports.(domain.OpenerPort); ok && o != nil {
		opener = o
	}

	svc := psvc.New(deps.KV, opener)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		phttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the panel service for in process wiring
func (m *Module) Service() *psvc.Service { return m.svc }

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

// Ports returns the service for cross module wiring
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
