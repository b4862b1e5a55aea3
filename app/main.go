package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/turbo-items/app/api"
	"github.com/lysyi3m/turbo-items/app/cfg"
	"github.com/lysyi3m/turbo-items/app/feed"
	"github.com/lysyi3m/turbo-items/app/store"
	"github.com/lysyi3m/turbo-items/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Turbo Items server", "version", appCfg.Version, "feed_url", appCfg.FeedURL)

	source, err := feed.LoadSource(appCfg.SourceFile)
	if err != nil {
		slog.Error("Failed to load source profile", "error", err)
		os.Exit(1)
	}

	builder, err := feed.NewBuilder(source)
	if err != nil {
		slog.Error("Failed to initialize record builder", "error", err)
		os.Exit(1)
	}

	timeout := time.Duration(source.Settings.Timeout) * time.Second
	httpClient := &http.Client{}

	ingestor := feed.NewIngestor(appCfg.FeedURL, httpClient, feed.NewParser(), builder, appCfg.UserAgent, timeout)
	records := store.New()

	var enricher *tasks.ContentEnricher
	if source.Settings.ExtractContent {
		enricher = tasks.NewContentEnricher(httpClient, feed.NewContentExtractor(), appCfg.UserAgent, timeout, appCfg.WorkerCount)
		slog.Info("Article content extraction enabled")
	}

	scheduler := tasks.NewScheduler(
		tasks.NewIngestTaskFactory(ingestor, records, enricher),
		appCfg.WorkerCount,
		time.Duration(appCfg.RefreshInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(records, appCfg.FeedURL, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Turbo Items server shutdown complete")
}
