package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/civic-service/internal/api/http"
	"github.com/spec-kit/civic-service/internal/api/http/handlers"
	"github.com/spec-kit/civic-service/internal/cluster"
	"github.com/spec-kit/civic-service/internal/config"
	"github.com/spec-kit/civic-service/internal/engine"
	"github.com/spec-kit/civic-service/internal/observability"
	"github.com/spec-kit/civic-service/internal/persistence"
	"github.com/spec-kit/civic-service/internal/syncbridge"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var store persistence.Store = redis
	pingers := map[string]handlers.Pinger{"redis": redis}
	if cfg.Storage.Backend == "postgres" {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		store = pg
		pingers["postgres"] = pg
	}

	detector := cluster.NewDetector(
		cfg.Engine.ClusterWindow(),
		cfg.Engine.AlertThreshold,
		cfg.Engine.CriticalThreshold,
	)

	eng := engine.New(engine.Dependencies{
		Store:    store,
		Notifier: redis,
		Detector: detector,
		Logger:   logger,
	})
	if err := eng.Init(ctx); err != nil {
		logger.Fatal("failed to initialize engine", zap.Error(err))
	}

	bridge := syncbridge.New(redis, eng, logger)
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sync bridge stopped", zap.Error(err))
		}
	}()

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Requests:   handlers.NewRequestsHandler(eng),
		Complaints: handlers.NewComplaintsHandler(eng),
		Alerts:     handlers.NewAlertsHandler(eng),
		Kiosks:     handlers.NewKiosksHandler(eng),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
