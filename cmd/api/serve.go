package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-analyzer/internal/bootstrap"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default command)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap.Build(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	go a.Sessions.RunSweeper(ctx, cfg.SessionSweepInterval, func(removed int) {
		metrics.AddSessionsSwept(removed)
		metrics.SetSessionsActive(a.Sessions.Len())
		if removed > 0 {
			logger.Info("sessions swept", zap.Int("removed", removed), zap.Int("remaining", a.Sessions.Len()))
		}
	})

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// Analysis requests wait on the model.
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting the API server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("version", version),
			zap.String("analysis_model", cfg.AnalysisModel),
			zap.String("chat_model", cfg.ChatModel),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down the API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
