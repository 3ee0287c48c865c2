// Package bootstrap assembles the application: configuration, logging,
// storage, the validation pipeline and the HTTP server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civic-reporter-go/internal/domain/analytics"
	"civic-reporter-go/internal/domain/caption"
	"civic-reporter-go/internal/domain/scoring"
	"civic-reporter-go/internal/domain/validation"
	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
	"civic-reporter-go/internal/platform/storage"
	httptransport "civic-reporter-go/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server and blocks until the context is cancelled or a
// termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.NewLoader(os.Getenv("CIVIC_CONFIG")).Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.File,
	})
	if err != nil {
		return errors.Wrap(errors.KindBootstrap, "bootstrap.run", "init logging", err)
	}
	defer logger.Close()

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}

	captioner := caption.NewService(cfg.Caption, logger)
	scorer := scoring.NewService(cfg.Scoring, logger)
	gate := validation.NewGate(cfg.ImageGate, logger)
	pipeline := validation.NewPipeline(gate, captioner, scorer, logger)

	if cfg.Caption.BaseURL == "" {
		logger.Warn("caption service not configured, captions degrade to placeholders")
	}

	analyticsSvc := analytics.NewService(db, cfg.Analytics, scorer, logger)

	router, err := httptransport.Build(cfg, logger)
	if err != nil {
		return err
	}
	svc, err := httptransport.NewService(
		cfg,
		logger,
		pipeline,
		storage.NewIssueRepository(db),
		storage.NewValidationRepository(db),
		analyticsSvc,
	)
	if err != nil {
		return err
	}
	svc.Register(router.API)

	addr := fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router.Engine,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- errors.Wrap(errors.KindBootstrap, "bootstrap.run", "http server", err)
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.KindBootstrap, "bootstrap.run", "graceful shutdown", err)
	}
	return <-serveErr
}
