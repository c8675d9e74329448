// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-rank/cliparse"
	"github.com/danielhkuo/quickly-rank/db"
	"github.com/danielhkuo/quickly-rank/metrics"
	"github.com/danielhkuo/quickly-rank/middleware"
	"github.com/danielhkuo/quickly-rank/router"
	"github.com/danielhkuo/quickly-rank/sessions"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Run the ranking HTTP API",
	Long: `Run the ranking HTTP API.

Configuration comes from the environment (and a .env file if present),
with flags applied on top. Run "quickly-rank serve -h" for the flag list.`,
	// cliparse owns the flag set so env and flags share one definition
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), args)
	},
}

func runServe(ctx context.Context, args []string) error {
	if err := cliparse.LoadDotEnv(); err != nil {
		return err
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return err
	}

	slog.SetDefault(newLogger(cfg.LogFormat, os.Stderr))

	// Connect to the journal database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	mgr := sessions.NewManager(db.NewStore(dbConn), collector, sessions.WithMaxItems(cfg.MaxItems))
	mux := router.NewRouter(mgr, cfg, collector)

	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "sessions", mgr.Len())
	}
	return err
}

func newLogger(format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
