package models

import "strings"

// UserPreferences holds the display name and stock watchlist. Lifecycle is
// independent from DailyRecord: created on first launch, mutated only by an
// explicit save.
type UserPreferences struct {
	UserName      string   `json:"userName"`
	TrackedStocks []string `json:"trackedStocks"`
}

// TrackedStocksValue renders the watchlist in its persisted comma-joined form.
func (p *UserPreferences) TrackedStocksValue() string {
	return strings.Join(p.TrackedStocks, ",")
}

// ParseTrackedStocks splits the persisted comma-joined watchlist, dropping
// empty entries and surrounding whitespace.
func ParseTrackedStocks(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	stocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			stocks = append(stocks, t)
		}
	}
	return stocks
}

// NotificationSchedule tracks the most recently scheduled recurring
// notification so rescheduling is idempotent per day.
type NotificationSchedule struct {
	NotificationID string `json:"notificationId"`
	ScheduledDate  string `json:"scheduledDate"`
}
