// @title         Verihub Coordinator
// @version       1.0.0
// @description   Request orchestration and state synchronization for verihub surfaces

package main

import (
	"context"
	"os/signal"
	"syscall"

	"verihub/internal/modkit"
	"verihub/internal/platform/config"
	"verihub/internal/platform/logger"
	phttp "verihub/internal/platform/net/http"
	"verihub/internal/platform/store"

	"verihub/internal/services/coordinator"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// service-scoped config for HTTP etc (CORE_*)
	root := config.New()
	coreCfg := root.Prefix("CORE_")
	storeCfg := root.Prefix("STORE_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// slot store, in memory unless STORE_DRIVER says otherwise
	kv, err := store.Open(ctx, store.Config{
		Driver: storeCfg.MayEnum("DRIVER", "memory", "memory", "postgres"),
		PG: store.PGConfig{
			URL:      storeCfg.MayString("PG_URL", ""),
			MaxConns: int32(storeCfg.MayInt("PG_MAX_CONNS", 4)),
		},
	})
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := kv.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_ADDR)
	srv := phttp.NewServer(coreCfg)

	coordinator.Mount(srv.Router(), modkit.Deps{
		Log: *l,
		Cfg: root,
		KV:  kv,
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
