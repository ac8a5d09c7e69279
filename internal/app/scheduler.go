package app

import (
	"context"
	"time"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
)

// startRefreshScheduler runs the shared refresh algorithm on a fixed interval,
// standing in for the platform background-fetch registration. A same-day run
// that finds the cache current reports no data and costs no network activity.
func startRefreshScheduler(ctx context.Context, briefingService interfaces.BriefingService, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Refresh scheduler: stopped")
			return
		case <-ticker.C:
			runBackgroundRefresh(ctx, briefingService, logger)
		}
	}
}

func runBackgroundRefresh(ctx context.Context, briefingService interfaces.BriefingService, logger *common.Logger) {
	start := time.Now()

	outcome := briefingService.RefreshInBackground(ctx)

	logger.Info().
		Str("outcome", outcome.String()).
		Dur("elapsed", time.Since(start)).
		Msg("Background refresh: complete")
}
