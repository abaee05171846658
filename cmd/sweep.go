package cmd

import (
	"context"
	"errors"

	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

// Sweep runs one reminder and auto-complete pass. It is meant to be
// triggered by cron; a run that finds the lock held exits cleanly.
func Sweep(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	rt, err := bootstrap(config, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.app.Service.Sweep.Sweep(ctx)
	if errors.Is(err, usecase.ErrSweepRunning) {
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("Sweep finished",
		zap.Int("reminders_sent", result.RemindersSent),
		zap.Int("completed", result.Completed),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)
	return nil
}
