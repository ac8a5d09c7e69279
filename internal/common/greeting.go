package common

import (
	"fmt"
	"strings"
	"time"
)

// DefaultUserName is used when no display name has been saved yet.
const DefaultUserName = "buddy"

// Greeting builds the time-of-day greeting for the given name.
// Before noon it is the app's signature "Ohayo" hello.
func Greeting(name string, now time.Time) string {
	if strings.TrimSpace(name) == "" {
		name = DefaultUserName
	}
	runes := []rune(name)
	capitalized := strings.ToUpper(string(runes[0])) + string(runes[1:])

	hour := now.Local().Hour()
	switch {
	case hour < 12:
		return fmt.Sprintf("Ohayo, %s!", capitalized)
	case hour < 18:
		return fmt.Sprintf("Good afternoon, %s!", capitalized)
	default:
		return fmt.Sprintf("Good evening, %s!", capitalized)
	}
}
