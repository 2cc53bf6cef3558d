package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/csg33k/staffdesk/internal/adapters/pdf"
	"github.com/csg33k/staffdesk/internal/adapters/sqlite"
	"github.com/csg33k/staffdesk/internal/config"
	"github.com/csg33k/staffdesk/internal/handlers"
	"github.com/csg33k/staffdesk/internal/metrics"
	"github.com/csg33k/staffdesk/internal/service"
)

const (
	sweepInterval   = time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, c config.Config) error {
	data, err := loadSeed(c)
	if err != nil {
		return err
	}

	var (
		stores service.Stores
		ready  func(context.Context) error
	)
	switch c.StoreBackend {
	case config.BackendSQLite:
		db, err := sqlite.Open(c.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if stores, err = service.SQLiteStores(ctx, db, data); err != nil {
			return err
		}
		ready = db.Ping
	default:
		if stores, err = service.MemoryStores(data); err != nil {
			return err
		}
	}

	rec := metrics.New()
	dash := service.New(service.Options{
		Stores:      stores,
		Mentors:     data.Mentors,
		ActivePhase: data.ActivePhase,
		UndoWindow:  c.UndoWindow,
		Latency:     c.SimulatedLatency,
		Observer:    rec,
		Reports:     pdf.New(c.OrgName),
		Logger:      slog.Default(),
	})
	go dash.Run(ctx, sweepInterval)

	h := handlers.New(dash, handlers.Options{Metrics: rec, Logger: slog.Default(), Ready: ready})
	srv := &http.Server{
		Addr:              c.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("staffdesk listening", "addr", "http://localhost"+c.Addr(), "backend", c.StoreBackend, "undo_window", c.UndoWindow)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
