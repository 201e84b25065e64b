package cli

import (
	"context"

	"bankingops/internal/modkit"
	"bankingops/internal/platform/config"
	"bankingops/internal/platform/logger"
	"bankingops/internal/platform/store"
	"bankingops/internal/platform/store/schema"
	"bankingops/internal/services/api"
	audit "bankingops/internal/services/audit/domain"
	auditrepo "bankingops/internal/services/audit/repo"
	dispatchdom "bankingops/internal/services/dispatch/domain"
	dispatchmod "bankingops/internal/services/dispatch/module"
	settingsdom "bankingops/internal/services/settings/domain"
	settingsmod "bankingops/internal/services/settings/module"
)

// DecisionReader lists recent decision log rows
type DecisionReader interface {
	Recent(ctx context.Context, limit int) ([]audit.Decision, error)
}

// Runtime is what commands work against
type Runtime struct {
	Dispatcher dispatchdom.Dispatcher
	Settings   settingsdom.Resolver
	Overrides  settingsdom.OverrideWriter

	// Decisions is nil when the decision log is disabled
	Decisions DecisionReader

	ApplySchema func(ctx context.Context) error
	Close       func() error
}

// Opener builds a Runtime
type Opener func(ctx context.Context) (*Runtime, error)

// OpenRuntime opens the stores from the environment and composes the same modules the API serves
func OpenRuntime(ctx context.Context) (*Runtime, error) {
	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "bankingopsctl"), store.WithLogger(*l))
	if err != nil {
		return nil, err
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: *l}
	rt := &Runtime{
		ApplySchema: func(ctx context.Context) error {
			if err := schema.ApplyPostgres(ctx, st.PG); err != nil {
				return err
			}
			if st.CH != nil {
				return schema.ApplyClickhouse(ctx, st.CH)
			}
			return nil
		},
		Close: func() error { return st.Close(context.Background()) },
	}
	if st.CH != nil {
		rt.Decisions = auditrepo.NewCH(st.CH)
	}

	for _, m := range api.Modules(deps) {
		switch p := m.Ports().(type) {
		case settingsmod.Ports:
			rt.Settings, rt.Overrides = p.Resolver, p.Writer
		case dispatchmod.Exposed:
			rt.Dispatcher = p.Dispatcher
		}
	}
	return rt, nil
}
