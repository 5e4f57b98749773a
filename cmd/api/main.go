package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/poolpro/poolpro-backend/config"
	"github.com/poolpro/poolpro-backend/internal/bootstrap"
	"github.com/poolpro/poolpro-backend/internal/logger"
	cronjob "github.com/poolpro/poolpro-backend/internal/professional_calculations/cron"
	"github.com/poolpro/poolpro-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Log, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      postgres.DSN(&cfg.Database),
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		lg.Fatal("database unavailable", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		// the catalog falls back to postgres
		lg.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	cachePing, closeProbe := bootstrap.CacheProbe(cfg.Redis, rdb)
	defer closeProbe()

	dep := bootstrap.RouterDeps{Config: cfg, DB: pool, Health: pool, Redis: rdb, CachePing: cachePing, Log: lg}
	catalog := bootstrap.BuildCatalog(dep)
	r := bootstrap.BuildRouter(dep, catalog)

	var scheduler *cronjob.Scheduler
	if catalog.Cache != nil && cfg.Scheduler.CatalogRefreshCron != "" {
		scheduler = cronjob.NewScheduler(catalog.Cache, lg.Named("cron"))
		scheduler.RefreshCatalog()
		if err := scheduler.Start(cfg.Scheduler.CatalogRefreshCron); err != nil {
			lg.Fatal("scheduler", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
