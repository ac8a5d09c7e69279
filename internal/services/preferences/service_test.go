package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

type memStorage struct {
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
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestGetPreferencesDefaultsOnFirstLaunch(t *testing.T) {
	service := NewService(newMemStorage(), common.NewSilentLogger())

	prefs, err := service.GetPreferences(context.Background())

	require.NoError(t, err)
	assert.Equal(t, common.DefaultUserName, prefs.UserName)
	assert.Empty(t, prefs.TrackedStocks)
}

func TestGetPreferencesReturnsStoredValues(t *testing.T) {
	storage := newMemStorage()
	storage.data[interfaces.KeyUserName] = "asha"
	storage.data[interfaces.KeyTrackedStocks] = "TCS,INFY"
	service := NewService(storage, common.NewSilentLogger())

	prefs, err := service.GetPreferences(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "asha", prefs.UserName)
	assert.Equal(t, []string{"TCS", "INFY"}, prefs.TrackedStocks)
}

func TestGetPreferencesStoreFailure(t *testing.T) {
	storage := newMemStorage()
	storage.getErr = errors.New("store offline")
	service := NewService(storage, common.NewSilentLogger())

	_, err := service.GetPreferences(context.Background())

	assert.Error(t, err)
}

func TestSavePreferencesRoundTrip(t *testing.T) {
	storage := newMemStorage()
	service := NewService(storage, common.NewSilentLogger())

	err := service.SavePreferences(context.Background(), &models.UserPreferences{
		UserName:      "asha",
		TrackedStocks: []string{"TCS", "INFY"},
	})

	require.NoError(t, err)
	assert.Equal(t, "asha", storage.data[interfaces.KeyUserName])
	assert.Equal(t, "TCS,INFY", storage.data[interfaces.KeyTrackedStocks])
}

func TestSavePreferencesRequiresName(t *testing.T) {
	service := NewService(newMemStorage(), common.NewSilentLogger())

	err := service.SavePreferences(context.Background(), &models.UserPreferences{})

	assert.Error(t, err)
}

func TestSavePreferencesWriteFailure(t *testing.T) {
	storage := newMemStorage()
	storage.setErr = errors.New("disk full")
	service := NewService(storage, common.NewSilentLogger())

	err := service.SavePreferences(context.Background(), &models.UserPreferences{UserName: "asha"})

	assert.Error(t, err)
}
