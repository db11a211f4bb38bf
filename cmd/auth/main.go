package main

import (
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
	"github.com/angaddubey10/oauth-demo/internal/oauth"
	"github.com/angaddubey10/oauth-demo/internal/observability"
	"github.com/angaddubey10/oauth-demo/internal/persistence"
	"github.com/angaddubey10/oauth-demo/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(config.ServiceAuth); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var states oauth.StateStore
	if redis != nil {
		states = oauth.NewRedisStateStore(redis.Client, cfg.Token.StateTTL())
	} else {
		states = oauth.NewMemoryStateStore(cfg.Token.StateTTL())
	}

	tokens := auth.NewTokenManager(cfg.Token.JWTSecret, cfg.Token.TTL())
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		Provider:   oauth.NewProvider(cfg.OAuth),
		StateStore: states,
		Tokens:     tokens,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.Auth.RequestTimeout())

	httptransport.RegisterAuthRoutes(app, httptransport.AuthRouteConfig{
		Health: handlers.NewHealthHandler(string(config.ServiceAuth), cfg.Version),
		Auth:   handlers.NewAuthHandler(authService, cfg.OAuth, cfg.Services.FrontendURL),
	})

	go func() {
		logger.Info("auth service listening", zap.String("addr", cfg.Auth.Addr()))
		if err := app.Listen(cfg.Auth.Addr()); err != nil {
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
