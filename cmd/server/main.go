package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"easyfindshub/docs"
	"easyfindshub/internal/auth"
	"easyfindshub/internal/cache"
	"easyfindshub/internal/config"
	"easyfindshub/internal/handler"
	"easyfindshub/internal/preview"
	"easyfindshub/internal/repository"
	"easyfindshub/internal/router"
	"easyfindshub/internal/service"
	"easyfindshub/internal/storage"
)

const (
	gracefulShutdownTimeout = 10 * time.Second
	startupTimeout          = 30 * time.Second
)

// @title EasyFinds Hub CMS API
// @version 1.0
// @description Article authoring and publishing API for the EasyFinds Hub admin dashboard.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	articles, closeStore, err := repository.NewArticleStore(startCtx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Warn("close document store", "error", err)
		}
	}()
	slog.Info("document store ready", "backend", cfg.DocumentStore)

	objects, err := storage.NewMinioStore(cfg.ObjectStore)
	if err != nil {
		return err
	}
	if err := objects.EnsureBucket(startCtx); err != nil {
		return err
	}
	slog.Info("object store ready", "endpoint", cfg.ObjectStore.Endpoint, "bucket", cfg.ObjectStore.Bucket)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(startCtx); err != nil {
		slog.Warn("redis unavailable, token revocation is best effort", "addr", cfg.RedisAddr, "error", err)
	}

	sessions := auth.NewSessionStore()
	defer sessions.Close()
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	renderer, err := preview.NewRenderer()
	if err != nil {
		return err
	}
	validator := service.NewDraftValidator()
	publishService := service.NewPublishService(objects, articles)
	draftService := service.NewDraftService(validator, publishService, renderer)
	articleService := service.NewArticleService(articles)
	authService, err := service.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, sessions, jwtService, tokenStore, draftService)
	if err != nil {
		return err
	}
	sessions.StartJanitor(auth.DefaultSweepInterval, authService.DiscardSession)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, validator.Validator(), authService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Draft:    handler.NewDraftHandler(draftService),
		Articles: handler.NewArticleHandler(articleService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.ServerPort, "swagger", "/swagger/index.html")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancelShutdown()
	slog.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
