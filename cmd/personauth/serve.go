package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for TLS Postgres from a scratch container

	bcryptadapter "github.com/ericfisherdev/personauth/internal/adapter/driven/bcrypt"
	httphandler "github.com/ericfisherdev/personauth/internal/adapter/driving/http"
	"github.com/ericfisherdev/personauth/internal/application"
	"github.com/ericfisherdev/personauth/internal/config"
	"github.com/ericfisherdev/personauth/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Open the configured credential store, apply pending migrations and serve
the person API until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.SetDefault("personauth", version, cfg.LogFormat, cfg.LogLevel)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"store", cfg.Store,
		"bcrypt_cost", cfg.BcryptCost,
		"require_auth", cfg.RequireAuth,
	)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	hasher := bcryptadapter.NewHasher(cfg.BcryptCost)
	persons := application.NewPersonService(store, hasher, logger)

	opts := httphandler.MuxOptions{}
	if cfg.RequireAuth {
		opts.Auth = application.NewAuthService(persons, hasher)
	}
	handler := httphandler.NewServeMux(httphandler.NewHandler(persons, logger), logger, opts)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("personauth started", "listen_addr", cfg.ListenAddr)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
		logger.Error("http server error", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return serveErr
}
