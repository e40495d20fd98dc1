package main

import (
	"context"
	"errors"
	"time"

	alertDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"go.uber.org/zap"
)

// runAlertSweep refreshes every alert on a fixed interval until ctx is done.
// A sweep already running on another instance is skipped silently.
func runAlertSweep(ctx context.Context, every time.Duration, sweep func(context.Context) (*alertDTO.RefreshResult, error), log logger.ZapLogger) {
	if every <= 0 {
		log.Info("Periodic alert sweep disabled")
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sweep(ctx); err != nil && !errors.Is(err, apperr.ErrBusy) {
				log.Error("Periodic alert sweep failed", zap.Error(err))
			}
		}
	}
}
