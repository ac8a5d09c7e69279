package briefing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarketContextMapping(t *testing.T) {
	assert.Equal(t, "Indian stock market (NSE, BSE)", marketContext("India"))
	assert.Equal(t, "US stock market (NYSE, NASDAQ)", marketContext("United States"))
	assert.Equal(t, "stock market for Brazil", marketContext("Brazil"))
	assert.Equal(t, "Indian stock market (default)", marketContext(""))
}

func TestNewsPromptEmbedsMarketAndDate(t *testing.T) {
	day := time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)
	prompt := newsPrompt(marketContext("India"), day)

	assert.Contains(t, prompt, "Indian stock market (NSE, BSE)")
	assert.Contains(t, prompt, "January 2, 2024")
	assert.Contains(t, prompt, `"categorizedNews"`)
}

func TestWeatherSummaryPromptEmbedsConditions(t *testing.T) {
	prompt := weatherSummaryPrompt(21.4, "clear sky")
	assert.Contains(t, prompt, "21.4°C")
	assert.Contains(t, prompt, "clear sky")
}
