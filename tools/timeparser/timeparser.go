package timeparser

import (
	"fmt"
	"time"
)

// ParseMeasureDatetime attempts to parse a caller-supplied reading timestamp
// with the formats meter clients are known to send.
func ParseMeasureDatetime(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,          // Standard RFC3339
		time.RFC3339Nano,      // JS Date.toISOString()
		"2006-01-02 15:04:05", // ISO with space separator
		"02/01/2006 15:04:05", // DD/MM/YYYY HH:mm:ss
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp '%s': %w", dateStr, lastErr)
}
