// Package api provides the HTTP API for the application
package api

import (
	"bankingops/internal/platform/config"
	"bankingops/internal/platform/logger"
	phttp "bankingops/internal/platform/net/http"
	"bankingops/internal/platform/store"

	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/modkit/module"
	"bankingops/internal/modkit/swaggerkit"

	metamod "bankingops/internal/services/api/meta/module"
	auditmod "bankingops/internal/services/audit/module"
	dispatch "bankingops/internal/services/dispatch/domain"
	dispatchmod "bankingops/internal/services/dispatch/module"
	idemmod "bankingops/internal/services/idempotency/module"
	recordsmod "bankingops/internal/services/records/module"
	rulesmod "bankingops/internal/services/rules/module"
	settingsmod "bankingops/internal/services/settings/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Modules builds the module graph leaves first and injects each module's ports into the next
func Modules(deps modkit.Deps) []module.Module {
	settings := settingsmod.New(deps)
	guard := idemmod.New(deps)
	recs := recordsmod.New(deps)
	audit := auditmod.New(deps)

	rules := rulesmod.New(deps, modkit.WithPorts(rulesmod.Ports{
		Records:  module.MustPortsOf[recordsmod.Ports](recs).Store,
		Settings: module.MustPortsOf[settingsmod.Ports](settings).Resolver,
		Guard:    module.MustPortsOf[idemmod.Ports](guard).Guard,
	}))

	dispatcher := dispatchmod.New(deps, modkit.WithPorts(dispatchmod.Ports{
		Engine:   module.MustPortsOf[rulesmod.Exposed](rules).Engine,
		Recorder: module.MustPortsOf[auditmod.Ports](audit).Recorder,
	}))

	return []module.Module{
		metamod.New(deps),
		settings,
		guard,
		recs,
		audit,
		rules,
		dispatcher,
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := Modules(deps)

	// versioned API with a common middleware stack
	httpkit.MountAPI(r, "v1", httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger, dispatch.Names())
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
