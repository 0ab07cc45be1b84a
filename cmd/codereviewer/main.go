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

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/codereviewer/internal/adapter/driven/backend"
	githubadapter "github.com/ericfisherdev/codereviewer/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/codereviewer/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/codereviewer/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web"
	"github.com/ericfisherdev/codereviewer/internal/application"
	"github.com/ericfisherdev/codereviewer/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"api_base_url", cfg.APIBaseURL,
		"api_timeout", cfg.APITimeout,
		"github_token", cfg.HasGitHubToken(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	historyStore := sqliteadapter.NewStatusEventRepo(db)

	api, err := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	if err != nil {
		return err
	}

	ghClient := githubadapter.NewClient(cfg.GitHubToken, cfg.APITimeout)
	if !cfg.HasGitHubToken() {
		slog.Info("no github token configured, repository lookups use the unauthenticated rate limit")
	}

	// 6. Create application services.
	statusSvc := application.NewStatusService(api, historyStore, slog.Default())
	reviewSvc := application.NewReviewService(api, statusSvc, ghClient, slog.Default())

	// 7. Register JSON API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(statusSvc, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(api, reviewSvc, cfg.SecureCookies, slog.Default()))

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	slog.Info("codereviewer started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
