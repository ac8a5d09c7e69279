// Package preferences manages the user's display name and stock watchlist.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

// Compile-time interface check
var _ interfaces.PreferenceService = (*Service)(nil)

// Service implements PreferenceService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new preference service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// GetPreferences loads the stored preferences. An unset name falls back to
// the default so first launch still greets the user.
func (s *Service) GetPreferences(ctx context.Context) (*models.UserPreferences, error) {
	kv := s.storage.KeyValueStorage()

	name, err := kv.Get(ctx, interfaces.KeyUserName)
	if err != nil && !errors.Is(err, interfaces.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to load user name: %w", err)
	}
	if name == "" {
		name = common.DefaultUserName
	}

	stocks, err := kv.Get(ctx, interfaces.KeyTrackedStocks)
	if err != nil && !errors.Is(err, interfaces.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to load tracked stocks: %w", err)
	}

	return &models.UserPreferences{
		UserName:      name,
		TrackedStocks: models.ParseTrackedStocks(stocks),
	}, nil
}

// SavePreferences persists both preference entries. They are independent
// keys; a failure on the second leaves the first written, which matches the
// store's per-key atomicity contract.
func (s *Service) SavePreferences(ctx context.Context, prefs *models.UserPreferences) error {
	if prefs.UserName == "" {
		return fmt.Errorf("user name is required")
	}

	kv := s.storage.KeyValueStorage()

	if err := kv.Set(ctx, interfaces.KeyUserName, prefs.UserName); err != nil {
		return fmt.Errorf("failed to save user name: %w", err)
	}
	if err := kv.Set(ctx, interfaces.KeyTrackedStocks, prefs.TrackedStocksValue()); err != nil {
		return fmt.Errorf("failed to save tracked stocks: %w", err)
	}

	s.logger.Info().
		Str("user", prefs.UserName).
		Int("tracked_stocks", len(prefs.TrackedStocks)).
		Msg("Preferences saved")

	return nil
}
