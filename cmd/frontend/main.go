package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	httptransport "github.com/angaddubey10/oauth-demo/internal/api/http"
	"github.com/angaddubey10/oauth-demo/internal/api/http/handlers"
	"github.com/angaddubey10/oauth-demo/internal/config"
	"github.com/angaddubey10/oauth-demo/internal/frontend"
	"github.com/angaddubey10/oauth-demo/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(config.ServiceFrontend); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	sessions := session.New(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	backend := frontend.NewClient(cfg.Services, cfg.Frontend.RequestTimeout())

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.Frontend.RequestTimeout())

	httptransport.RegisterFrontendRoutes(app, httptransport.FrontendRouteConfig{
		Health:   handlers.NewHealthHandler(string(config.ServiceFrontend), cfg.Version),
		Frontend: handlers.NewFrontendHandler(sessions, backend, cfg.Services.AuthServiceURL, logger),
	})

	go func() {
		logger.Info("frontend listening", zap.String("addr", cfg.Frontend.Addr()))
		if err := app.Listen(cfg.Frontend.Addr()); err != nil {
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
