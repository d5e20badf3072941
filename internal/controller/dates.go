package controller

import (
	"fmt"
	"time"
)

// parseISO8601Date parses a date string in ISO 8601 format
// Supports:
//   - YYYY-MM-DD (e.g., "2024-04-02")
//   - RFC3339 (e.g., "2024-04-02T15:04:05Z")
//   - RFC3339Nano
//   - YYYY-MM-DDTHH:MM:SS without a zone, read as UTC
func parseISO8601Date(dateStr string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, dateStr); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, dateStr); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", dateStr); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse ISO 8601 date: %s (expected YYYY-MM-DD or RFC3339)", dateStr)
}
