// Package geolocate resolves the device position and its place name.
//
// Position comes from fixed configured coordinates when present, otherwise
// from an IP geolocation lookup. The IP lookup also carries the place name,
// which is remembered so a following ReverseGeocode for the same coordinates
// needs no second request. Fixed coordinates are reverse-geocoded through the
// weather provider's geocoding endpoint.
package geolocate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

const (
	DefaultBaseURL = "http://ip-api.com"
	DefaultTimeout = 15 * time.Second
)

// ErrLocationUnavailable is the one refresh failure surfaced to the user:
// without coordinates the weather and news context cannot be built at all.
var ErrLocationUnavailable = errors.New("location unavailable")

// ReverseGeocoder resolves coordinates to place candidates. The OpenWeather
// client satisfies this.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) ([]models.Place, error)
}

// Client implements the Geolocator interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger

	enabled   bool
	fixed     *models.Coordinates
	useLookup bool
	geocoder  ReverseGeocoder

	mu         sync.Mutex
	lastCoords models.Coordinates
	lastPlace  *models.Place
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the IP lookup base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithGeocoder sets the reverse geocoder used for fixed coordinates
func WithGeocoder(geocoder ReverseGeocoder) ClientOption {
	return func(c *Client) {
		c.geocoder = geocoder
	}
}

// NewClient creates a new geolocation client from the location config.
func NewClient(cfg common.LocationConfig, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:    common.NewSilentLogger(),
		enabled:   cfg.Enabled,
		useLookup: cfg.UseLookup,
	}

	if cfg.HasFixedCoordinates() {
		c.fixed = &models.Coordinates{Latitude: cfg.Latitude, Longitude: cfg.Longitude}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ipLookupResponse mirrors the ip-api.com JSON payload
type ipLookupResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
}

// CurrentPosition returns the device coordinates.
func (c *Client) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if !c.enabled {
		return models.Coordinates{}, ErrLocationUnavailable
	}

	if c.fixed != nil {
		return *c.fixed, nil
	}

	if !c.useLookup {
		return models.Coordinates{}, ErrLocationUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json", nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+"/json").Msg("IP geolocation request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.Coordinates{}, fmt.Errorf("%w: lookup returned %d: %s", ErrLocationUnavailable, resp.StatusCode, string(body))
	}

	var payload ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	if payload.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("%w: %s", ErrLocationUnavailable, payload.Message)
	}

	coords := models.Coordinates{Latitude: payload.Lat, Longitude: payload.Lon}

	// Remember the place the lookup already resolved.
	c.mu.Lock()
	c.lastCoords = coords
	c.lastPlace = &models.Place{
		City:    payload.City,
		Region:  payload.RegionName,
		Country: payload.Country,
	}
	c.mu.Unlock()

	return coords, nil
}

// ReverseGeocode resolves coordinates to place candidates, best first.
func (c *Client) ReverseGeocode(ctx context.Context, coords models.Coordinates) ([]models.Place, error) {
	c.mu.Lock()
	if c.lastPlace != nil && c.lastCoords == coords {
		place := *c.lastPlace
		c.mu.Unlock()
		return []models.Place{place}, nil
	}
	c.mu.Unlock()

	if c.geocoder == nil {
		return nil, nil
	}

	places, err := c.geocoder.ReverseGeocode(ctx, coords)
	if err != nil {
		return nil, err
	}
	for i := range places {
		places[i].Country = countryName(places[i].Country)
	}
	return places, nil
}

// countryName expands the geocoder's ISO country codes to the display names
// the news market mapping expects. Unknown codes pass through.
func countryName(code string) string {
	names := map[string]string{
		"IN": "India",
		"US": "United States",
		"AU": "Australia",
		"BR": "Brazil",
		"GB": "United Kingdom",
		"JP": "Japan",
		"DE": "Germany",
		"CA": "Canada",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// Ensure Client implements Geolocator
var _ interfaces.Geolocator = (*Client)(nil)
