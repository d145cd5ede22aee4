package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (storage, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	stores *Stores
	http   *http.Server
}

// New bootstraps the logger, storage, services and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("storage", cfg.StorageDriver).Msg("starting application bootstrap")

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	questionSvc := question.NewService(stores.Questions, stores.Categories, logger)
	selector := quiz.NewSelector(stores.Questions, stores.Categories, logger)

	apiServer := server.NewHTTPServer(cfg, logger, server.Dependencies{
		Questions: questionSvc,
		Quiz:      selector,
		Metrics:   metrics.New(prometheus.DefaultRegisterer),
		Gatherer:  prometheus.DefaultGatherer,
		Readiness: stores.Readiness,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		stores: stores,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	if err := a.stores.Close(); err != nil {
		a.logger.Error().Err(err).Msg("storage shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
