package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalDay(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)
	assert.Equal(t, "2024-01-02", LocalDay(ts))
}

func TestSameLocalDay(t *testing.T) {
	ts := time.Date(2024, 1, 2, 23, 59, 59, 0, time.Local)

	assert.True(t, SameLocalDay("2024-01-02", ts))
	assert.False(t, SameLocalDay("2024-01-01", ts))
	assert.False(t, SameLocalDay("", ts))
}

func TestSameLocalDayAcrossMidnight(t *testing.T) {
	before := time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local)
	after := time.Date(2024, 1, 2, 0, 1, 0, 0, time.Local)

	day := LocalDay(before)
	assert.True(t, SameLocalDay(day, before))
	assert.False(t, SameLocalDay(day, after))
}
