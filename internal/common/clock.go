// Package common provides shared utilities for Ohayo
package common

import "time"

// DayFormat is the calendar-date layout used as the cache partition key.
const DayFormat = "2006-01-02"

// LocalDay returns the local calendar date stamp for t.
func LocalDay(t time.Time) string {
	return t.Local().Format(DayFormat)
}

// SameLocalDay reports whether a cached day stamp matches the local day of t.
// A record from any other day is stale.
func SameLocalDay(day string, t time.Time) bool {
	if day == "" {
		return false
	}
	return day == LocalDay(t)
}
