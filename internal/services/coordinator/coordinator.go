// Package coordinator assembles the service modules into one HTTP surface
package coordinator

import (
	modkit "verihub/internal/modkit"
	"verihub/internal/modkit/httpkit"
	"verihub/internal/modkit/module"
	"verihub/internal/modkit/swaggerkit"

	adomain "verihub/internal/services/analysis/domain"
	amod "verihub/internal/services/analysis/module"
	gmod "verihub/internal/services/gateway/module"
	pdomain "verihub/internal/services/panel/domain"
	pmod "verihub/internal/services/panel/module"
)

// Modules is the assembled set, exposed so tests and the entrypoint can
// reach individual services
type Modules struct {
	Analysis *amod.Module
	Panel    *pmod.Module
	Gateway  *gmod.Module
}

// Mount builds every module, registers their ports, and mounts all routes
// under /api/v1 with the common middleware stack
func Mount(r httpkit.Router, deps modkit.Deps, opts ...modkit.Option) Modules {
	analysis := amod.New(deps, opts...)
	module.Register(analysis.Name(), analysis.Ports())

	panel := pmod.New(deps)
	module.Register(panel.Name(), panel.Ports())

	gateway := gmod.New(deps, modkit.WithPorts(gmod.Ports{
		Analysis: mustPort[adomain.ServicePort](analysis.Name()),
		Panel:    mustPort[pdomain.ServicePort](panel.Name()),
	}))

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		analysis.MountRoutes(api)
		panel.MountRoutes(api)
		gateway.MountRoutes(api)
	})

	swaggerkit.Mount(r, deps.Cfg.MayBool("CORE_DOCS_ENABLE", false))

	return Modules{Analysis: analysis, Panel: panel, Gateway: gateway}
}

func mustPort[T any](name string) T {
	p, ok := module.PortsAs[T](name)
	if !ok {
		panic("module " + name + " did not publish the expected port")
	}
	return p
}
