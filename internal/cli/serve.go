package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/andy/rosterdash/internal/db"
	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/repository"
	"github.com/andy/rosterdash/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local roster endpoint",
	Long: `Serve the /clients REST endpoint the dashboard syncs with.

The roster lives in an in-memory database that is seeded with the
demonstration clients on every start and discarded on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := appInstance.Logger

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = appInstance.Config.Server.Addr
		}
		noSeed, _ := cmd.Flags().GetBool("empty")

		database, err := db.OpenMemory()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		srv := server.New(repository.NewClientRepo(database), appInstance.IDs, appInstance.Metrics, logger)

		seed := domain.SeedClients()
		if noSeed {
			seed = nil
		}
		if err := srv.Seed(cmd.Context(), seed); err != nil {
			return fmt.Errorf("failed to seed roster: %w", err)
		}
		logger.Info("roster seeded", "clients", len(seed))

		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20, // 1MB
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case <-ctx.Done():
		}
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :4090)")
	serveCmd.Flags().Bool("empty", false, "Start with an empty roster instead of the demonstration clients")
}
