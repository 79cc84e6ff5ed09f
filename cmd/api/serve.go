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

	"tour-planning-assistant/internal/adapters/auth/jwtauth"
	"tour-planning-assistant/internal/adapters/auth/remote"
	"tour-planning-assistant/internal/config"
	"tour-planning-assistant/internal/platform/logger"
	"tour-planning-assistant/internal/ports/auth"
	"tour-planning-assistant/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func runServe(parent context.Context, flags *rootFlags) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig(flags)
	if err != nil {
		return err
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("auth in dev mode: X-Debug-User-ID is trusted", nil)
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores(st, log)

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           st.db,
		Mongo:        st.mongo,
		Logger:       log,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr(), "storage": cfg.Storage(), "auth_mode": cfg.AuthMode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Fields{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newVerifier devuelve nil en modo dev.
func newVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		return jwtauth.NewVerifier(cfg.JWTSigningKey)
	case config.AuthModeRemote:
		return remote.NewVerifier(remote.Config{BaseURL: cfg.AuthBaseURL, APIKey: cfg.AuthAPIKey})
	default:
		return nil, nil
	}
}
