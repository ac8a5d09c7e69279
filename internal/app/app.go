// Package app wires the Ohayo services into one explicitly constructed
// process-wide context, created once at startup and torn down in Close.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ohayoapp/ohayo/internal/clients/gemini"
	"github.com/ohayoapp/ohayo/internal/clients/geolocate"
	notifybackend "github.com/ohayoapp/ohayo/internal/clients/notify"
	"github.com/ohayoapp/ohayo/internal/clients/openweather"
	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/services/briefing"
	"github.com/ohayoapp/ohayo/internal/services/notify"
	"github.com/ohayoapp/ohayo/internal/services/preferences"
	"github.com/ohayoapp/ohayo/internal/storage"
)

// App holds all initialized services and clients. It is the one owner of the
// background refresh registration; nothing here is ambient module state.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	WeatherClient     interfaces.WeatherClient
	GeminiClient      interfaces.GeminiClient
	Geolocator        interfaces.Geolocator
	BriefingService   interfaces.BriefingService
	PreferenceService interfaces.PreferenceService
	NotifyService     interfaces.NotifyService
	StartupTime       time.Time

	notifierBackend *notifybackend.Backend
	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, OHAYO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("OHAYO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "ohayo.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/ohayo.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	weatherKey, err := common.ResolveAPIKey("openweather_api_key", config.Clients.OpenWeather.APIKey)
	if err != nil {
		logger.Warn().Msg("OpenWeather API key not configured - weather will be unavailable")
	}

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - AI summaries will be unavailable")
	}

	var weatherClient *openweather.Client
	if weatherKey != "" {
		weatherClient = openweather.NewClient(weatherKey,
			openweather.WithLogger(logger),
			openweather.WithBaseURL(config.Clients.OpenWeather.BaseURL),
			openweather.WithRateLimit(config.Clients.OpenWeather.RateLimit),
			openweather.WithTimeout(config.Clients.OpenWeather.GetTimeout()),
		)
	}

	var geminiClient *gemini.Client
	if geminiKey != "" {
		geminiClient, err = gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		}
	}

	geoOpts := []geolocate.ClientOption{
		geolocate.WithLogger(logger),
		geolocate.WithBaseURL(config.Clients.Geolocate.BaseURL),
		geolocate.WithTimeout(config.Clients.Geolocate.GetTimeout()),
	}
	if weatherClient != nil {
		geoOpts = append(geoOpts, geolocate.WithGeocoder(weatherClient))
	}
	geolocator := geolocate.NewClient(config.Location, geoOpts...)

	notifierBackend := notifybackend.NewBackend(logger)

	// Nil client interfaces must stay nil, not typed-nil pointers.
	var weatherIface interfaces.WeatherClient
	if weatherClient != nil {
		weatherIface = weatherClient
	}
	var geminiIface interfaces.GeminiClient
	if geminiClient != nil {
		geminiIface = geminiClient
	}

	briefingService := briefing.NewService(storageManager, geolocator, weatherIface, geminiIface, logger)
	preferenceService := preferences.NewService(storageManager, logger)
	notifyService := notify.NewService(storageManager, notifierBackend, config.Notify, logger)

	a := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		WeatherClient:     weatherIface,
		GeminiClient:      geminiIface,
		Geolocator:        geolocator,
		BriefingService:   briefingService,
		PreferenceService: preferenceService,
		NotifyService:     notifyService,
		StartupTime:       startupStart,
		notifierBackend:   notifierBackend,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: cancel the refresh scheduler, stop notifications, close storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.notifierBackend != nil {
		a.notifierBackend.Close()
		a.notifierBackend = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// StartRefreshScheduler launches the background periodic refresh goroutine.
func (a *App) StartRefreshScheduler() {
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	a.schedulerCancel = schedulerCancel
	go startRefreshScheduler(schedulerCtx, a.BriefingService, a.Logger, a.Config.Refresh.GetInterval())
}

// Bootstrap runs the startup flow: load preferences, perform the foreground
// refresh, and schedule the daily notification carrying the fresh quote and
// temperature. A failed refresh is logged, not fatal — the server still comes
// up and serves whatever the cache holds.
func (a *App) Bootstrap(ctx context.Context) {
	prefs, err := a.PreferenceService.GetPreferences(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Bootstrap: failed to load preferences")
		return
	}

	record, err := a.BriefingService.LoadBriefing(ctx, false)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Bootstrap: briefing refresh unavailable")
		return
	}

	quote := record.Quote
	temp := ""
	if record.Weather != nil && record.Weather.Raw != nil {
		temp = strconv.FormatFloat(record.Weather.Raw.Temp, 'f', -1, 64)
	}

	if err := a.NotifyService.ScheduleDailyBrief(ctx, prefs.UserName, quote, temp); err != nil {
		a.Logger.Warn().Err(err).Msg("Bootstrap: failed to schedule daily notification")
	}
}
