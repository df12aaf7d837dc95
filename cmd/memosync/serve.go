package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/memosync/internal/handler"
	"github.com/dukerupert/memosync/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address; overrides MEMOSYNC_ADDR")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	storage, closeStorage, err := openStorage(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	srv := server.New(storage, server.Options{
		UI: handler.UIOptions{
			LoadingDelay:  a.cfg.UI.LoadingDelay,
			ToastDuration: a.cfg.UI.ToastDuration,
			TooltipDelay:  a.cfg.UI.TooltipDelay,
		},
		RateLimit:      a.cfg.HTTP.RateLimit,
		TrustProxy:     a.cfg.HTTP.TrustProxy,
		OriginPatterns: a.cfg.HTTP.OriginPatterns,
	}, a.logger)
	defer srv.Close()

	// Load now so a corrupt collection is reported at startup.
	srv.Notes().Load(ctx)

	httpServer := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		a.logger.Info("memosync running", "addr", a.cfg.HTTP.Addr, "storage", a.cfg.Storage.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		srv.RateLimiter().Run(ctx, time.Minute)
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
