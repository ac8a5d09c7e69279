// Package interfaces defines service contracts for Ohayo
package interfaces

import (
	"context"

	"github.com/ohayoapp/ohayo/internal/models"
)

// WeatherClient provides access to the current-weather provider
type WeatherClient interface {
	// GetCurrentWeather retrieves current conditions for a position (metric units)
	GetCurrentWeather(ctx context.Context, coords models.Coordinates) (*models.WeatherReport, error)
}

// GeminiClient provides access to the generative-text provider
type GeminiClient interface {
	// GenerateContent generates AI content from a single-shot prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Geolocator resolves the device position and its human-readable place
type Geolocator interface {
	// CurrentPosition returns the device coordinates.
	// Returns ErrLocationUnavailable when location acquisition is disabled
	// or no position can be determined.
	CurrentPosition(ctx context.Context) (models.Coordinates, error)

	// ReverseGeocode resolves coordinates to place candidates, best first.
	ReverseGeocode(ctx context.Context, coords models.Coordinates) ([]models.Place, error)
}

// Notifier is the local-notification backend
type Notifier interface {
	// ScheduleDaily registers a repeating daily notification and returns its id
	ScheduleDaily(ctx context.Context, hour, minute int, title, body string) (string, error)

	// Cancel removes a previously scheduled notification
	Cancel(ctx context.Context, notificationID string) error
}
