package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adivinatobi/adivinatobi/backend/internal/router"
	"github.com/adivinatobi/adivinatobi/backend/internal/setup"
	"github.com/adivinatobi/adivinatobi/shared/config"
	"github.com/adivinatobi/adivinatobi/shared/logger"
)

func serve(ctx context.Context, cfg *config.Config) error {
	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Cleanup()

	httpCfg := cfg.Public.Http
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpCfg.Port),
		Handler:           router.New(deps),
		ReadTimeout:       httpCfg.ReadTimeout,
		ReadHeaderTimeout: httpCfg.ReadTimeout,
		WriteTimeout:      httpCfg.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "version", releaseVersion, "addr", srv.Addr, "store", cfg.Public.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
