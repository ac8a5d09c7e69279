package interfaces

import (
	"context"

	"github.com/ohayoapp/ohayo/internal/models"
)

// RefreshOutcome is the tri-state result a background refresh reports to its
// scheduler.
type RefreshOutcome int

const (
	// RefreshNoData means the refresh could not run (location unavailable);
	// the prior cached record, if any, is untouched.
	RefreshNoData RefreshOutcome = iota
	// RefreshNewData means a record was produced and persisted.
	RefreshNewData
	// RefreshFailed means the refresh aborted unexpectedly.
	RefreshFailed
)

func (o RefreshOutcome) String() string {
	switch o {
	case RefreshNoData:
		return "no_data"
	case RefreshNewData:
		return "new_data"
	case RefreshFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BriefingService is the daily refresh-and-cache orchestrator.
type BriefingService interface {
	// LoadBriefing returns today's DailyRecord, serving the cache when it is
	// stamped with the current local day and forceRefresh is false, otherwise
	// running the full aggregation and overwriting the cache.
	// The only surfaced failure is location unavailability; every provider
	// failure degrades into the record.
	LoadBriefing(ctx context.Context, forceRefresh bool) (*models.DailyRecord, error)

	// RefreshInBackground runs the same algorithm for the periodic scheduler
	// and maps its result onto the scheduler's outcome codes.
	RefreshInBackground(ctx context.Context) RefreshOutcome
}

// PreferenceService manages the user's display name and stock watchlist.
type PreferenceService interface {
	GetPreferences(ctx context.Context) (*models.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *models.UserPreferences) error
}

// NotifyService schedules the recurring daily-brief notification.
type NotifyService interface {
	// ScheduleDailyBrief makes sure one repeating notification exists for
	// today, carrying the greeting, quote, and temperature. Idempotent per
	// local day.
	ScheduleDailyBrief(ctx context.Context, userName, quote, temp string) error
}
