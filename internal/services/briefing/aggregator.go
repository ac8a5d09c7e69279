package briefing

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
	"github.com/ohayoapp/ohayo/internal/models"
)

// Aggregator produces a merged daily-briefing payload from the three
// independent upstream providers. Every provider failure is resolved locally
// to its documented fallback; the aggregate is always structurally complete.
type Aggregator struct {
	weather interfaces.WeatherClient
	ai      interfaces.GeminiClient
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing
}

// NewAggregator creates a new data aggregator. Either client may be nil when
// its API key is not configured; its calls then degrade the same way a
// transport failure would.
func NewAggregator(weather interfaces.WeatherClient, ai interfaces.GeminiClient, logger *common.Logger) *Aggregator {
	return &Aggregator{
		weather: weather,
		ai:      ai,
		logger:  logger,
		now:     time.Now,
	}
}

// Aggregate fans out the weather, news, and quote fetches concurrently and
// joins all three regardless of individual outcome. The AI weather summary is
// issued once the raw weather settles, overlapping the other two calls.
func (a *Aggregator) Aggregate(ctx context.Context, coords models.Coordinates, country string) *models.DailyRecord {
	var (
		wg      sync.WaitGroup
		weather *models.WeatherBlock
		news    []models.NewsCategory
		quote   string
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		raw := a.fetchWeather(ctx, coords)
		if raw == nil {
			weather = &models.WeatherBlock{}
			return
		}
		weather = &models.WeatherBlock{
			Raw:       raw,
			AiSummary: a.weatherSummary(ctx, raw),
		}
	}()

	go func() {
		defer wg.Done()
		news = a.fetchNews(ctx, country)
	}()

	go func() {
		defer wg.Done()
		quote = a.fetchQuote(ctx)
	}()

	wg.Wait()

	return &models.DailyRecord{
		Weather:        weather,
		NewsCategories: news,
		Quote:          quote,
	}
}

// fetchWeather retrieves current conditions, degrading to nil on any failure.
func (a *Aggregator) fetchWeather(ctx context.Context, coords models.Coordinates) *models.WeatherReport {
	if a.weather == nil {
		return nil
	}
	report, err := a.weather.GetCurrentWeather(ctx, coords)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Weather fetch degraded")
		return nil
	}
	return report
}

// fetchNews asks the AI provider for categorized market news, degrading to an
// empty sequence on any transport or parse failure.
func (a *Aggregator) fetchNews(ctx context.Context, country string) []models.NewsCategory {
	if a.ai == nil {
		return []models.NewsCategory{}
	}

	market := marketContext(country)
	text, err := a.ai.GenerateContent(ctx, newsPrompt(market, a.now()))
	if err != nil {
		a.logger.Warn().Err(err).Str("market", market).Msg("News fetch degraded")
		return []models.NewsCategory{}
	}

	categories, err := parseCategorizedNews(text)
	if err != nil {
		a.logger.Warn().Err(err).Str("market", market).Msg("News response malformed")
		return []models.NewsCategory{}
	}

	return categories
}

// fetchQuote asks the AI provider for the daily quote, degrading to the fixed
// fallback line.
func (a *Aggregator) fetchQuote(ctx context.Context) string {
	if a.ai == nil {
		return FallbackQuote
	}
	text, err := a.ai.GenerateContent(ctx, quotePrompt())
	if err != nil {
		a.logger.Warn().Err(err).Msg("Quote fetch degraded")
		return FallbackQuote
	}
	quote := stripFences(text)
	if quote == "" {
		return FallbackQuote
	}
	return quote
}

// weatherSummary asks the AI provider for the prose companion to a weather
// report, degrading to a summary synthesized from the raw temperature and
// condition text plus the fixed joke.
func (a *Aggregator) weatherSummary(ctx context.Context, raw *models.WeatherReport) *models.AiWeatherSummary {
	if a.ai != nil {
		text, err := a.ai.GenerateContent(ctx, weatherSummaryPrompt(raw.Temp, raw.Description))
		if err == nil {
			if summary, parseErr := parseWeatherSummary(text); parseErr == nil {
				return summary
			}
			a.logger.Warn().Msg("Weather summary response malformed, using fallback")
		} else {
			a.logger.Warn().Err(err).Msg("Weather summary degraded")
		}
	}

	return &models.AiWeatherSummary{
		Summary: fmt.Sprintf("It's currently %d°C and %s.", roundTemp(raw.Temp), raw.Description),
		Joke:    FallbackJoke,
	}
}

// roundTemp rounds a displayed temperature up to the next whole degree.
func roundTemp(temp float64) int {
	return int(math.Ceil(temp))
}
