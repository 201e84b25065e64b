// @title         BankingOps API
// @version       0.1.0
// @description   Banking policy operations: credit limits, loan eligibility, FX quotes, transaction validation and fraud scoring

package main

import (
	"context"
	"os/signal"
	"syscall"

	"bankingops/internal/modkit/repokit"
	"bankingops/internal/platform/config"
	"bankingops/internal/platform/logger"
	phttp "bankingops/internal/platform/net/http"
	"bankingops/internal/platform/store"
	"bankingops/internal/platform/store/schema"

	"bankingops/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("API_")

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "bankingops-api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	if root.MayBool("BANKINGOPS_APPLY_SCHEMA", false) {
		if err := schema.ApplyPostgres(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("postgres schema apply failed")
		}
		if st.CH != nil {
			if err := schema.ApplyClickhouse(ctx, st.CH); err != nil {
				l.Panic().Err(err).Msg("clickhouse schema apply failed")
			}
		}
	}

	// http server (reads API_PORT and the API_ timeouts)
	srv := phttp.NewServer(root)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
