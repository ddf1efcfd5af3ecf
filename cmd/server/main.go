package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lojf/registry/internal/config"
	"github.com/lojf/registry/internal/db"
	"github.com/lojf/registry/internal/logging"
	"github.com/lojf/registry/internal/services"
	"github.com/lojf/registry/internal/web"
)

const serviceName = "registry"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Operations registry API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(userCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("usuario")
			password, _ := cmd.Flags().GetString("clave")
			role, _ := cmd.Flags().GetString("rol")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, serviceName)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			conn, err := db.Open(cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			svc := services.New(conn, services.SystemClock(loc))
			if err := svc.Users.Create(cmd.Context(), username, password, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", username)
			return nil
		},
	}
	addCmd.Flags().String("usuario", "", "Login name")
	addCmd.Flags().String("clave", "", "Password")
	addCmd.Flags().String("rol", "admin", "Role returned on login")
	_ = addCmd.MarkFlagRequired("usuario")
	_ = addCmd.MarkFlagRequired("clave")
	cmd.AddCommand(addCmd)

	return cmd
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("open database", zap.String("path", cfg.DBPath), zap.Error(err))
		return err
	}
	defer db.Close(conn)

	svc := services.New(conn, services.SystemClock(loc))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           web.Router(conn, svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("db", cfg.DBPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
