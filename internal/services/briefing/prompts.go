package briefing

import (
	"fmt"
	"time"
)

// Fallback values substituted when a provider call degrades.
const (
	FallbackQuote = "The secret of getting ahead is getting started. - Mark Twain"
	FallbackJoke  = "Why did the cloud break up with the fog? He was too down to earth."
)

// marketContext maps a country name to the market string scoping the news
// prompt. Two markets are recognized explicitly; any other country gets a
// generic scope, and an unknown location defaults to the Indian market.
func marketContext(country string) string {
	switch country {
	case "":
		return "Indian stock market (default)"
	case "India":
		return "Indian stock market (NSE, BSE)"
	case "United States":
		return "US stock market (NYSE, NASDAQ)"
	default:
		return fmt.Sprintf("stock market for %s", country)
	}
}

// newsPrompt builds the categorized-news request for one market and day.
func newsPrompt(market string, day time.Time) string {
	formattedDate := day.Format("January 2, 2006")
	return fmt.Sprintf(`You are an expert financial news analyst AI. Your task is to act as if you have read the top articles from financial news websites like moneycontrol.com for the %s for today's date, %s. From your knowledge, generate a structured JSON output of the day's most important stock market news. 1. Identify 2-3 of the most impactful market categories from today's news (e.g., "Banking Sector", "IT Stocks", "Automotive"). 2. For each category, write a short, catchy, one-line summary in a friendly tone. 3. For each category, list 1-2 of the most important stock tickers mentioned in the news, along with the specific, brief headline related to that stock. The required JSON structure is: { "categorizedNews": [ { "category": "Example Category", "summary": "Catchy summary here...", "stocks": [ { "ticker": "TICKER", "headline": "Specific stock headline here..." } ] } ] }`, market, formattedDate)
}

// quotePrompt requests the short daily inspirational line.
func quotePrompt() string {
	return `You are Ohayo, a friendly AI buddy. Give me one short, inspirational, and friendly quote for the day. Keep it under 15 words. Do not add quotation marks or any extra text, just the quote and the author if known (e.g., The best way to predict the future is to create it. - Peter Drucker).`
}

// weatherSummaryPrompt requests the prose companion for a weather report.
func weatherSummaryPrompt(temp float64, description string) string {
	return fmt.Sprintf(`You are Ohayo, a friendly and witty AI buddy. The current weather is %.1f°C with %s. Write a short, cheerful one-line summary of the weather, and one clean weather-related joke. Respond with strict JSON only, no markdown, in the structure: { "summary": "...", "joke": "..." }`, temp, description)
}
