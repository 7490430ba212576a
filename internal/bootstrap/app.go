package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/config"
)

// App encapsulates the server lifecycle and the index build operation.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	builder *faq.Builder
	entries []faq.Entry
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, builder *faq.Builder, entries []faq.Entry) *App {
	return &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		server:  server,
		builder: builder,
		entries: entries,
	}
}

// Build populates the index and returns. With recreate the existing
// collection is dropped first; otherwise the build is additive (upsert by
// id into an ensured collection).
func (a *App) Build(ctx context.Context, recreate bool) error {
	start := time.Now()
	if recreate {
		if err := a.builder.RebuildIndex(ctx); err != nil {
			return err
		}
	} else if err := a.builder.EnsureIndex(ctx); err != nil {
		return err
	}
	written, err := a.builder.Upsert(ctx, a.entries)
	if err != nil {
		return err
	}
	a.logger.Info("index build complete", "entries", written, "recreated", recreate, "took_ms", time.Since(start).Milliseconds())
	return nil
}

// Run optionally bootstraps the index per configuration, then starts the HTTP
// server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	switch a.cfg.Index.Bootstrap {
	case config.BootstrapOff:
		a.logger.Info("index bootstrap disabled, serving existing index")
	case config.BootstrapRebuild:
		// Destructive and opt-in: a restart wipes the index only when the
		// operator asked for it.
		if err := a.Build(ctx, true); err != nil {
			return err
		}
	default:
		if err := a.Build(ctx, false); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
