package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperengineering/between/internal/api"
	"github.com/hyperengineering/between/internal/config"
	"github.com/hyperengineering/between/internal/generator"
	"github.com/hyperengineering/between/internal/history"
	"github.com/hyperengineering/between/internal/orchestrator"
	"github.com/hyperengineering/between/internal/selector"
	"github.com/hyperengineering/between/internal/validator"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "between",
	Short: "Between - Daily Word Puzzle Service",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	initLogger(cfg.Log)
	slog.Info("configuration loaded", "dev_mode", config.DevMode())

	store, err := history.NewSQLiteStore(cfg.Database.Path, cfg.Puzzle.MaxHistoryDays)
	if err != nil {
		return err
	}
	slog.Info("history store initialized", "path", cfg.Database.Path)

	source := newSource(cfg)
	slog.Info("candidate source initialized", "model", source.ModelName())

	sel := selector.New(validator.Default())
	puzzles := orchestrator.New(source, store, sel, orchestrator.Config{
		RoundCount:   cfg.Puzzle.RoundsPerDay,
		BatchSize:    cfg.Puzzle.BatchSize,
		MaxAttempts:  cfg.Puzzle.MaxAttempts,
		RecentSample: cfg.Puzzle.RecentSample,
		BackoffBase:  time.Duration(cfg.Puzzle.BackoffBase),
		BackoffCap:   time.Duration(cfg.Puzzle.BackoffCap),
	})

	handler := api.NewHandler(puzzles, store, source.ModelName(), cfg.Auth.APIKey, Version)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully. Anything else is a real failure.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := store.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newSource picks the candidate source: the static table in dev mode,
// the OpenAI-backed generator otherwise.
func newSource(cfg *config.Config) generator.CandidateSource {
	if config.DevMode() {
		return generator.NewStatic()
	}
	return generator.NewOpenAI(cfg.Generator.APIKey, cfg.Generator.Model)
}

func initLogger(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
