package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/jeopardy/internal/board"
	"github.com/playperu/jeopardy/internal/config"
	"github.com/playperu/jeopardy/internal/handler/health"
	"github.com/playperu/jeopardy/internal/jservice"
	"github.com/playperu/jeopardy/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Quiz API ---
	client, err := jservice.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.APITimeout})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}
	sampler := jservice.NewSampler(client, jservice.SamplerConfig{
		NumberOfCategories:       cfg.NumberOfCategories,
		NumberOfCluesPerCategory: cfg.NumberOfCluesPerCategory,
		CategoryPoolSize:         cfg.CategoryPoolSize,
	}, nil)
	logger.Info("using quiz api", "url", cfg.APIURL,
		"categories", cfg.NumberOfCategories, "clues_per_category", cfg.NumberOfCluesPerCategory)

	// --- Board ---
	broker := server.NewBroker()
	view := server.NewView(broker)
	ctrl := board.New(logger, sampler, view)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Controller: ctrl,
		View:       view,
		Broker:     broker,
		Checks:     map[string]health.Checker{"jservice": client},
		SPADir:     cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
