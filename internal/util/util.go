package util

import (
	"fmt"
	"strings"
	"time"
)

var markupStripper = strings.NewReplacer("<", "", ">", "")

// SanitizeInput trims surrounding whitespace and removes angle brackets.
func SanitizeInput(s string) string {
	return markupStripper.Replace(strings.TrimSpace(s))
}

// NormalizeEmail sanitizes an email and lower-cases it for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(SanitizeInput(email))
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
