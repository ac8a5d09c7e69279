// Package models defines the domain types for Ohayo
package models

// Coordinates is a geographic position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the result of reverse-geocoding a position.
// City is preferred for display; Region is the fallback.
type Place struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// DisplayName returns the preferred human-readable place name.
func (p *Place) DisplayName() string {
	if p.City != "" {
		return p.City
	}
	return p.Region
}

// WeatherReport is the raw current-weather payload from the provider,
// reduced to the fields the briefing uses.
type WeatherReport struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Station     string  `json:"station,omitempty"`
}

// AiWeatherSummary is the generated prose companion to a WeatherReport.
type AiWeatherSummary struct {
	Summary string `json:"summary"`
	Joke    string `json:"joke"`
}

// WeatherBlock pairs the raw provider data with its AI summary.
// Either side may be nil when the corresponding call degraded.
type WeatherBlock struct {
	Raw       *WeatherReport    `json:"data"`
	AiSummary *AiWeatherSummary `json:"aiSummary"`
}

// StockHeadline is a single ticker with its news headline.
type StockHeadline struct {
	Ticker   string `json:"ticker"`
	Headline string `json:"headline"`
}

// NewsCategory groups the day's market news under one theme.
type NewsCategory struct {
	Category string          `json:"category"`
	Summary  string          `json:"summary"`
	Stocks   []StockHeadline `json:"stocks"`
}

// DailyRecord is the unit of caching: one complete briefing snapshot for a
// single local calendar day. It is written whole or not at all.
type DailyRecord struct {
	Date           string         `json:"date"`
	Weather        *WeatherBlock  `json:"weather,omitempty"`
	NewsCategories []NewsCategory `json:"stocks"`
	Quote          string         `json:"quote,omitempty"`
	LocationName   string         `json:"locationName,omitempty"`
	Country        string         `json:"country,omitempty"`
}
