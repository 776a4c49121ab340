// Package typing computes the simulated typing delay applied before the bot
// sends a trivia answer, so replies arrive at a human-looking pace.
package typing

import (
	"math"
	"strings"
	"unicode/utf8"

	"kageo/backend/internal/config"
)

const (
	charsPerWord    = 5.0
	spaceHesitation = 0.1
	sendOverhead    = 0.2
)

// Estimate returns the simulated typing time in seconds for the given text at
// the given speed in words per minute. Empty input yields the minimum time.
// The result is rounded to 2 decimal places and never exceeds
// config.MaxTypingSeconds. Callers validate the speed range before calling.
func Estimate(text string, speedWPM int) float64 {
	if text == "" {
		return config.MinTypingSeconds
	}

	charsPerSecond := float64(speedWPM) * charsPerWord / 60.0

	charTime := float64(utf8.RuneCountInString(text)) / charsPerSecond
	spaceTime := float64(strings.Count(text, " ")) * spaceHesitation

	total := math.Round((charTime+spaceTime+sendOverhead)*100) / 100
	return math.Min(math.Max(total, config.MinTypingSeconds), config.MaxTypingSeconds)
}
