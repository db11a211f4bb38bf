package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/angaddubey10/oauth-demo/internal/api/http"
	"github.com/angaddubey10/oauth-demo/internal/api/http/handlers"
	"github.com/angaddubey10/oauth-demo/internal/auth"
	"github.com/angaddubey10/oauth-demo/internal/config"
	"github.com/angaddubey10/oauth-demo/internal/observability"
	"github.com/angaddubey10/oauth-demo/internal/persistence"
	"github.com/angaddubey10/oauth-demo/internal/repository"
	"github.com/angaddubey10/oauth-demo/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(config.ServiceResource); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var resources repository.ResourceRepository
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		resources = repository.NewResourceRepository(pool)
	} else {
		resources = repository.NewMemoryResourceRepository()
	}

	metrics := observability.NewMetrics()
	resourceService := service.NewResourceService(resources, repository.NewMemoryDirectoryRepository(), metrics)

	tokens := auth.NewTokenManager(cfg.Token.JWTSecret, cfg.Token.TTL())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.Resource.RequestTimeout())

	httptransport.RegisterResourceRoutes(app, httptransport.ResourceRouteConfig{
		Health:         handlers.NewHealthHandler(string(config.ServiceResource), cfg.Version),
		Resources:      handlers.NewResourceHandler(resourceService),
		AuthMiddleware: auth.NewMiddleware(tokens),
	})

	go func() {
		logger.Info("resource service listening", zap.String("addr", cfg.Resource.Addr()))
		if err := app.Listen(cfg.Resource.Addr()); err != nil {
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
