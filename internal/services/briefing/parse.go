package briefing

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ohayoapp/ohayo/internal/models"
)

var (
	newlineRe = regexp.MustCompile(`(\r\n|\n|\r)`)
	fenceRe   = regexp.MustCompile("`{3}(json)?")
)

// stripFences removes newlines and markdown code-fence wrapping from an AI
// response so the embedded JSON can be parsed.
func stripFences(text string) string {
	cleaned := newlineRe.ReplaceAllString(text, "")
	cleaned = fenceRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// newsEnvelope is the strict JSON structure requested from the AI provider.
type newsEnvelope struct {
	CategorizedNews []models.NewsCategory `json:"categorizedNews"`
}

// parseCategorizedNews parses the AI news response. A malformed response or
// one with invalid entries fails as a whole — the caller degrades to an empty
// sequence rather than accepting a partial or garbled one.
func parseCategorizedNews(text string) ([]models.NewsCategory, error) {
	var envelope newsEnvelope
	if err := json.Unmarshal([]byte(stripFences(text)), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	for _, category := range envelope.CategorizedNews {
		if category.Category == "" || category.Summary == "" {
			return nil, fmt.Errorf("news category missing required fields")
		}
		for _, stock := range category.Stocks {
			if stock.Ticker == "" {
				return nil, fmt.Errorf("news stock entry missing ticker")
			}
		}
	}

	return envelope.CategorizedNews, nil
}

// parseWeatherSummary parses the AI weather-summary response.
func parseWeatherSummary(text string) (*models.AiWeatherSummary, error) {
	var summary models.AiWeatherSummary
	if err := json.Unmarshal([]byte(stripFences(text)), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse weather summary: %w", err)
	}
	if summary.Summary == "" {
		return nil, fmt.Errorf("weather summary missing summary field")
	}
	return &summary, nil
}
