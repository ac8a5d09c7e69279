package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohayoapp/ohayo/internal/clients/geolocate"
	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

// memStorage is an in-memory StorageManager with injectable failures.
type memStorage struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string)}
}

func (m *memStorage) KeyValueStorage() interfaces.KeyValueStorage { return m }
func (m *memStorage) Close() error                                { return nil }

func (m *memStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return "", interfaces.ErrKeyNotFound
	}
	return value, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStorage) put(t *testing.T, key string, record *models.DailyRecord) {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	m.mu.Lock()
	m.data[key] = string(data)
	m.mu.Unlock()
}

type mockGeolocator struct {
	mu       sync.Mutex
	coords   models.Coordinates
	posErr   error
	places   []models.Place
	geoErr   error
	posCalls int
}

func (m *mockGeolocator) CurrentPosition(_ context.Context) (models.Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posCalls++
	if m.posErr != nil {
		return models.Coordinates{}, m.posErr
	}
	return m.coords, nil
}

func (m *mockGeolocator) ReverseGeocode(_ context.Context, _ models.Coordinates) ([]models.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.geoErr != nil {
		return nil, m.geoErr
	}
	return m.places, nil
}

type serviceFixture struct {
	service    *Service
	storage    *memStorage
	geolocator *mockGeolocator
	weather    *mockWeatherClient
	ai         *mockGeminiClient
}

func newServiceFixture(now time.Time) *serviceFixture {
	storage := newMemStorage()
	geolocator := &mockGeolocator{
		coords: testCoords(),
		places: []models.Place{{City: "Bengaluru", Region: "Karnataka", Country: "India"}},
	}
	weather := &mockWeatherClient{report: &models.WeatherReport{Temp: 24.2, Description: "clear sky"}}
	ai := &mockGeminiClient{
		newsText:  validNews,
		quoteText: "Keep going. - Someone",
		summary:   `{"summary": "A lovely clear day!", "joke": "Cloud joke."}`,
	}

	service := NewService(storage, geolocator, weather, ai, common.NewSilentLogger())
	service.now = func() time.Time { return now }
	service.aggregator.now = service.now

	return &serviceFixture{
		service:    service,
		storage:    storage,
		geolocator: geolocator,
		weather:    weather,
		ai:         ai,
	}
}

func TestLoadBriefingCacheHitSkipsProviders(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.storage.put(t, interfaces.KeyDailyRecord, &models.DailyRecord{
		Date:  "2024-01-02",
		Quote: "cached quote",
	})

	record, err := f.service.LoadBriefing(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "cached quote", record.Quote)
	assert.Equal(t, 0, f.geolocator.posCalls)
	assert.Equal(t, 0, f.weather.calls)
	assert.Equal(t, 0, f.ai.calls)
	assert.Equal(t, StateCached, f.service.State())
}

func TestLoadBriefingForceRefreshBypassesCache(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.storage.put(t, interfaces.KeyDailyRecord, &models.DailyRecord{
		Date:  "2024-01-02",
		Quote: "cached quote",
	})

	record, err := f.service.LoadBriefing(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, "Keep going. - Someone", record.Quote)
	assert.Equal(t, 1, f.geolocator.posCalls)
	assert.Equal(t, 1, f.weather.calls)
	assert.Equal(t, StateReady, f.service.State())
}

func TestLoadBriefingStaleCacheRefreshesAndRestamps(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 5, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.storage.put(t, interfaces.KeyDailyRecord, &models.DailyRecord{
		Date:  "2024-01-01",
		Quote: "yesterday's quote",
	})

	record, err := f.service.LoadBriefing(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", record.Date)
	assert.Equal(t, "Keep going. - Someone", record.Quote)
	assert.Equal(t, "Bengaluru", record.LocationName)
	assert.Equal(t, "India", record.Country)

	cached := f.service.readCache(context.Background())
	require.NotNil(t, cached)
	assert.Equal(t, "2024-01-02", cached.Date)
}

func TestLoadBriefingLocationUnavailable(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.geolocator.posErr = geolocate.ErrLocationUnavailable

	record, err := f.service.LoadBriefing(context.Background(), false)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, geolocate.ErrLocationUnavailable)
	assert.Equal(t, 0, f.weather.calls)
	assert.Equal(t, StateReady, f.service.State())
}

func TestLoadBriefingPositionFailureWrapped(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.geolocator.posErr = errors.New("gps timeout")

	_, err := f.service.LoadBriefing(context.Background(), false)

	assert.ErrorIs(t, err, geolocate.ErrLocationUnavailable)
	assert.Contains(t, err.Error(), "gps timeout")
}

func TestLoadBriefingReverseGeocodeDegrades(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.geolocator.geoErr = errors.New("geocoder down")

	record, err := f.service.LoadBriefing(context.Background(), false)

	require.NoError(t, err)
	assert.Empty(t, record.LocationName)
	assert.Empty(t, record.Country)
	require.NotNil(t, record.Weather.Raw)
}

func TestLoadBriefingCorruptCacheTreatedAsMiss(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.storage.data[interfaces.KeyDailyRecord] = "{not json"

	record, err := f.service.LoadBriefing(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", record.Date)
	assert.Equal(t, 1, f.geolocator.posCalls)
}

func TestLoadBriefingCacheWriteFailureStillReturnsRecord(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	f := newServiceFixture(now)
	f.storage.setErr = errors.New("disk full")

	record, err := f.service.LoadBriefing(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", record.Date)
	assert.Equal(t, "Keep going. - Someone", record.Quote)
}

func TestRefreshInBackgroundOutcomes(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)

	t.Run("new data on refresh", func(t *testing.T) {
		f := newServiceFixture(now)
		outcome := f.service.RefreshInBackground(context.Background())
		assert.Equal(t, interfaces.RefreshNewData, outcome)
	})

	t.Run("no data on same-day cache hit", func(t *testing.T) {
		f := newServiceFixture(now)
		f.storage.put(t, interfaces.KeyDailyRecord, &models.DailyRecord{Date: "2024-01-02"})
		outcome := f.service.RefreshInBackground(context.Background())
		assert.Equal(t, interfaces.RefreshNoData, outcome)
		assert.Equal(t, 0, f.geolocator.posCalls)
	})

	t.Run("no data when location unavailable", func(t *testing.T) {
		f := newServiceFixture(now)
		f.geolocator.posErr = geolocate.ErrLocationUnavailable
		outcome := f.service.RefreshInBackground(context.Background())
		assert.Equal(t, interfaces.RefreshNoData, outcome)
	})
}
