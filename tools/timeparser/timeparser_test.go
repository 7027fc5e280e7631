package timeparser_test

import (
	"testing"
	"time"

	"github.com/rcamargo/meter-reading-api/tools/timeparser"
)

func TestParseMeasureDatetime_RFC3339(t *testing.T) {
	dateStr := "2024-08-29T10:30:45Z"

	result, err := timeparser.ParseMeasureDatetime(dateStr)
	if err != nil {
		t.Fatalf("Failed to parse timestamp: %v", err)
	}

	expected := time.Date(2024, 8, 29, 10, 30, 45, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestParseMeasureDatetime_ISOMilliseconds(t *testing.T) {
	dateStr := "2024-08-29T10:30:45.123Z"

	result, err := timeparser.ParseMeasureDatetime(dateStr)
	if err != nil {
		t.Fatalf("Failed to parse timestamp: %v", err)
	}

	expected := time.Date(2024, 8, 29, 10, 30, 45, 123000000, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestParseMeasureDatetime_SpaceSeparator(t *testing.T) {
	dateStr := "2024-08-29 10:30:45"

	result, err := timeparser.ParseMeasureDatetime(dateStr)
	if err != nil {
		t.Fatalf("Failed to parse timestamp: %v", err)
	}

	expected := time.Date(2024, 8, 29, 10, 30, 45, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestParseMeasureDatetime_BrazilianFormat(t *testing.T) {
	dateStr := "29/08/2024 10:30:45"

	result, err := timeparser.ParseMeasureDatetime(dateStr)
	if err != nil {
		t.Fatalf("Failed to parse timestamp: %v", err)
	}

	expected := time.Date(2024, 8, 29, 10, 30, 45, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestParseMeasureDatetime_Invalid(t *testing.T) {
	dateStr := "invalid-date-string"

	_, err := timeparser.ParseMeasureDatetime(dateStr)
	if err == nil {
		t.Error("Expected error for invalid timestamp")
	}
}
