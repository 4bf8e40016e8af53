package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bookkeeper/internal/audit"
	audithandler "bookkeeper/internal/audit/handler"
	"bookkeeper/internal/entities"
	entityhandler "bookkeeper/internal/entities/handler"
	"bookkeeper/internal/importer"
	importhandler "bookkeeper/internal/importer/handler"
	"bookkeeper/internal/platform/config"
	"bookkeeper/internal/platform/httpserver"
	"bookkeeper/internal/platform/logger"
	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/platform/postgres"
	"bookkeeper/internal/platform/redis"
	"bookkeeper/internal/registry"
	"bookkeeper/internal/resolver"
	"bookkeeper/internal/transactions"
	txhandler "bookkeeper/internal/transactions/handler"
	httptransport "bookkeeper/internal/transport/http"
)

const auditInboxBuffer = 256

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
		log.Info("resolver cache enabled")
	}

	// Stores are in-memory unless a database is configured.
	var (
		txStore    transactions.Store = transactions.NewInMemoryStore()
		auditStore audit.Store        = audit.NewInMemoryStore()
	)
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		txStore = transactions.NewPostgresStore(db)
		auditStore = audit.NewPostgresStore(db)
		log.Info("durable stores enabled")
	}

	publisher := audit.NewPublisher(auditInboxBuffer, log)
	publish := publisher.Hook()
	set := entities.NewSet(registry.WithHook(func(ctx context.Context, mu registry.Mutation) {
		m.RecordMutation(mu.Kind, string(mu.Action))
		publish(ctx, mu)
	}))
	if err := entities.Seed(ctx, set); err != nil {
		log.Error("failed to seed registries", "error", err)
		os.Exit(1)
	}

	res := resolver.New(set, cache, config.ResolverCacheTTL, log, m)
	imp := importer.New(set, res, txStore, log, m)

	router := httptransport.NewRouter(
		entityhandler.New(set, res, log, m, cfg.AdminToken),
		txhandler.New(txStore, log, m),
		importhandler.New(imp, cfg.AdminToken, log, m),
		audithandler.New(auditStore, cfg.AdminToken, log, m),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return audit.NewWorker(auditStore, publisher.Inbox(), log).Run(ctx)
	})
	g.Go(func() error {
		log.Info("starting bookkeeper", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
