// Package module wires the analysis orchestrator using modkit
package module

import (
	"net/http"

	"verihub/internal/adapters/remote/verif"
	modkit "verihub/internal/modkit"
	"verihub/internal/modkit/httpkit"

	ahttp "verihub/internal/services/analysis/http"
	asvc "verihub/internal/services/analysis/service"
)

// Module implements the analysis module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *asvc.Service
}

// New constructs the analysis module from config
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analysis"),
		modkit.WithPrefix("/analysis"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	// tests may inject a fake upstream through ports
	var client asvc.Client
	if c, ok := b.Ports.(asvc.Client); ok && c != nil {
		client = c
	} else {
		client = verif.NewClient(cfg.Client)
	}

	svc := asvc.New(client, cfg.Service)

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
		ahttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the orchestrator for in process wiring
func (m *Module) Service() *asvc.Service { return m.svc }

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

// Ports returns the service port for cross module wiring
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
