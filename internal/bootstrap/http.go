package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/proseware/auth-api/config"
	httpx "github.com/proseware/auth-api/internal/http"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunHTTPServer builds the handler stack, serves it on the configured
// address, and blocks until ctx is canceled or the listener fails. On
// cancellation the server drains in-flight requests before returning.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := buildHTTPHandler(cfg, logger)

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":4000"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}

func buildHTTPHandler(cfg *HTTPServerConfig, logger *slog.Logger) http.Handler {
	router := httpx.NewRouter(httpx.RouterServices{
		Users:        cfg.Services.Users,
		Tokens:       cfg.Services.Tokens,
		Store:        cfg.Services.Store,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
		IsDev:        cfg.Config.IsDev,
		Logger:       logger,
	})

	// Order: Recover -> Logging -> Router
	errs := &httpx.ErrorRenderer{IsDev: cfg.Config.IsDev, Logger: logger}
	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger, errs)(h)

	return h
}
