// Package main provides the standalone REST server for sentimizer.
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

	"sentimizer/internal/config"
	"sentimizer/internal/match"
	"sentimizer/internal/metrics"
	"sentimizer/internal/nlp"
	"sentimizer/internal/normalize"
	"sentimizer/internal/roster"
	"sentimizer/internal/sentiment"
	"sentimizer/internal/server"
	"sentimizer/internal/service"
	"sentimizer/internal/window"
)

func main() {
	cfg := config.Load()

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	slog.SetDefault(logger)
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	slog.Info("starting sentimizer-server", "port", cfg.ServerPort)

	r, err := roster.Load(cfg.RosterPath)
	if err != nil {
		slog.Error("failed to load roster", "error", err, "path", cfg.RosterPath)
		os.Exit(1)
	}
	slog.Info("roster loaded", "players", r.Len())

	norm, err := normalize.Load(cfg.AliasPath)
	if err != nil {
		slog.Error("failed to load alias tables", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	classifier, err := sentiment.NewClassifier(cfg, collector)
	if err != nil {
		slog.Error("failed to create classifier", "error", err)
		os.Exit(1)
	}
	slog.Info("classifier ready", "model", classifier.Name())

	engine := sentiment.NewEngine(classifier, window.NewBuilder(norm, cfg.WindowRadius), cfg.ScoreConcurrency, collector)
	analyzer := service.NewAnalyzer(nlp.NewProseTagger(), norm, match.New(r), engine, collector, service.NewArtifactWriter(cfg.OutputDir))

	srv := server.New(analyzer, roster.NewFetcher(), cfg.RosterPath, collector)

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long for classifier calls
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("REST API available", "url", fmt.Sprintf("http://localhost:%s/", cfg.ServerPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
