// Package common provides shared utilities for Ohayo
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Ohayo
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Location    LocationConfig `toml:"location"`
	Refresh     RefreshConfig  `toml:"refresh"`
	Notify      NotifyConfig   `toml:"notify"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the cache store path.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	OpenWeather OpenWeatherConfig `toml:"openweather"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Geolocate   GeolocateConfig   `toml:"geolocate"`
}

// OpenWeatherConfig holds OpenWeather API configuration
type OpenWeatherConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *OpenWeatherConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// GeolocateConfig holds the IP geolocation lookup configuration
type GeolocateConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GeolocateConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// LocationConfig controls how the device position is acquired.
// When Enabled is false the refresh path fails with ErrLocationUnavailable,
// mirroring a denied location permission on the device.
type LocationConfig struct {
	Enabled   bool    `toml:"enabled"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	UseLookup bool    `toml:"use_lookup"` // fall back to IP geolocation when no fixed coordinates
}

// HasFixedCoordinates reports whether explicit coordinates are configured.
func (c *LocationConfig) HasFixedCoordinates() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// RefreshConfig holds background refresh configuration
type RefreshConfig struct {
	Interval string `toml:"interval"`
}

// GetInterval parses and returns the refresh interval, defaulting to ~12h
// like the mobile background fetch registration.
func (c *RefreshConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// NotifyConfig holds the daily notification schedule
type NotifyConfig struct {
	Hour   int `toml:"hour"`
	Minute int `toml:"minute"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/cache",
		},
		Clients: ClientsConfig{
			OpenWeather: OpenWeatherConfig{
				BaseURL:   "https://api.openweathermap.org",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
			Geolocate: GeolocateConfig{
				BaseURL: "http://ip-api.com",
				Timeout: "15s",
			},
		},
		Location: LocationConfig{
			Enabled:   true,
			UseLookup: true,
		},
		Refresh: RefreshConfig{
			Interval: "12h",
		},
		Notify: NotifyConfig{
			Hour:   8,
			Minute: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("OHAYO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("OHAYO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("OHAYO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("OHAYO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("OHAYO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if v := os.Getenv("OHAYO_LOCATION_LAT"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			config.Location.Latitude = lat
		}
	}
	if v := os.Getenv("OHAYO_LOCATION_LON"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			config.Location.Longitude = lon
		}
	}
	if v := os.Getenv("OHAYO_REFRESH_INTERVAL"); v != "" {
		config.Refresh.Interval = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves an API key from environment variables with a config fallback
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"openweather_api_key": {"OPENWEATHER_API_KEY", "OHAYO_OPENWEATHER_API_KEY"},
		"gemini_api_key":      {"GEMINI_API_KEY", "OHAYO_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}
