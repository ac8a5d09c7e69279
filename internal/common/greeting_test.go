package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2024, 6, 1, hour, 0, 0, 0, time.Local)
}

func TestGreetingMorning(t *testing.T) {
	assert.Equal(t, "Ohayo, Asha!", Greeting("asha", at(9)))
}

func TestGreetingAfternoon(t *testing.T) {
	assert.Equal(t, "Good afternoon, Asha!", Greeting("asha", at(14)))
}

func TestGreetingEvening(t *testing.T) {
	assert.Equal(t, "Good evening, Asha!", Greeting("asha", at(20)))
}

func TestGreetingDefaultsName(t *testing.T) {
	assert.Equal(t, "Ohayo, Buddy!", Greeting("", at(8)))
	assert.Equal(t, "Ohayo, Buddy!", Greeting("   ", at(8)))
}
