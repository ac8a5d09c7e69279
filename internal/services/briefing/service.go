// Package briefing implements the daily refresh-and-cache orchestrator and
// its data aggregator.
package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ohayoapp/ohayo/internal/clients/geolocate"
	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

// State is the orchestrator's observable refresh state. There is no error
// terminal state: every failure except location unavailability funnels to
// Ready with degraded content.
type State string

const (
	StateCached     State = "cached"
	StateRefreshing State = "refreshing"
	StateReady      State = "ready"
)

// Compile-time interface check
var _ interfaces.BriefingService = (*Service)(nil)

// Service implements BriefingService
type Service struct {
	storage    interfaces.StorageManager
	geolocator interfaces.Geolocator
	aggregator *Aggregator
	logger     *common.Logger
	now        func() time.Time // injectable clock for testing

	mu    sync.RWMutex
	state State
}

// NewService creates the refresh orchestrator.
func NewService(storage interfaces.StorageManager, geolocator interfaces.Geolocator, weather interfaces.WeatherClient, ai interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		storage:    storage,
		geolocator: geolocator,
		aggregator: NewAggregator(weather, ai, logger),
		logger:     logger,
		now:        time.Now,
		state:      StateReady,
	}
}

// State returns the orchestrator's current refresh state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// LoadBriefing returns today's DailyRecord per the staleness rule: a cached
// record stamped with the current local day is served as-is unless
// forceRefresh is set; otherwise the full aggregation runs and overwrites the
// cache. Location unavailability is the only surfaced error.
func (s *Service) LoadBriefing(ctx context.Context, forceRefresh bool) (*models.DailyRecord, error) {
	record, _, err := s.load(ctx, forceRefresh)
	return record, err
}

// load runs the refresh algorithm and additionally reports whether a new
// record was produced (false on a cache hit).
func (s *Service) load(ctx context.Context, forceRefresh bool) (*models.DailyRecord, bool, error) {
	today := common.LocalDay(s.now())

	if cached := s.readCache(ctx); cached != nil && !forceRefresh && cached.Date == today {
		s.setState(StateCached)
		s.logger.Debug().Str("date", today).Msg("Briefing served from cache")
		return cached, false, nil
	}

	s.setState(StateRefreshing)

	coords, err := s.geolocator.CurrentPosition(ctx)
	if err != nil {
		s.setState(StateReady)
		if errors.Is(err, geolocate.ErrLocationUnavailable) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("%w: %v", geolocate.ErrLocationUnavailable, err)
	}

	// Reverse-resolve the place. Failure here degrades to an absent place
	// name and the default market context.
	var place models.Place
	if places, geoErr := s.geolocator.ReverseGeocode(ctx, coords); geoErr != nil {
		s.logger.Warn().Err(geoErr).Msg("Reverse geocode degraded")
	} else if len(places) > 0 {
		place = places[0]
	}

	record := s.aggregator.Aggregate(ctx, coords, place.Country)
	record.Date = today
	record.LocationName = place.DisplayName()
	record.Country = place.Country

	s.writeCache(ctx, record)

	s.setState(StateReady)
	return record, true, nil
}

// RefreshInBackground runs the shared refresh algorithm for the periodic
// scheduler and maps the result onto its outcome codes: a same-day cache hit
// produced no new data, a completed aggregation did, and anything else failed.
func (s *Service) RefreshInBackground(ctx context.Context) interfaces.RefreshOutcome {
	record, refreshed, err := s.load(ctx, false)
	switch {
	case errors.Is(err, geolocate.ErrLocationUnavailable):
		s.logger.Warn().Err(err).Msg("Background refresh skipped: location unavailable")
		return interfaces.RefreshNoData
	case err != nil:
		s.logger.Error().Err(err).Msg("Background refresh failed")
		return interfaces.RefreshFailed
	case !refreshed:
		s.logger.Debug().Str("date", record.Date).Msg("Background refresh: cache already current")
		return interfaces.RefreshNoData
	default:
		return interfaces.RefreshNewData
	}
}

// readCache loads the cached DailyRecord. Both an absent key and a store
// failure are treated as a cache miss; the distinction is only logged.
func (s *Service) readCache(ctx context.Context) *models.DailyRecord {
	value, err := s.storage.KeyValueStorage().Get(ctx, interfaces.KeyDailyRecord)
	if err != nil {
		if !errors.Is(err, interfaces.ErrKeyNotFound) {
			s.logger.Warn().Err(err).Msg("Cache read failed, treating as miss")
		}
		return nil
	}

	var record models.DailyRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		s.logger.Warn().Err(err).Msg("Cached record malformed, treating as miss")
		return nil
	}
	return &record
}

// writeCache persists the record, overwriting any existing entry. A write
// failure is best-effort: the fresh record is still returned for display.
func (s *Service) writeCache(ctx context.Context, record *models.DailyRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode record for cache")
		return
	}
	if err := s.storage.KeyValueStorage().Set(ctx, interfaces.KeyDailyRecord, string(data)); err != nil {
		s.logger.Warn().Err(err).Str("date", record.Date).Msg("Cache write failed, serving unpersisted record")
		return
	}
	s.logger.Info().Str("date", record.Date).Msg("Briefing cached")
}
