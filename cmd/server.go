package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// APIServer serves the HTTP API until ctx is cancelled, then drains
// in-flight requests.
func APIServer(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	rt, err := bootstrap(config, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.App.Port),
		Handler:      rt.app.Router,
		ReadTimeout:  time.Duration(config.App.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(config.App.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
