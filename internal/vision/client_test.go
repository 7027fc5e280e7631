package vision

import (
	"errors"
	"testing"
)

func TestParseReading_PlainInteger(t *testing.T) {
	value, err := ParseReading("1234")
	if err != nil {
		t.Fatalf("Failed to parse reading: %v", err)
	}
	if value != 1234 {
		t.Errorf("Expected 1234, got %d", value)
	}
}

func TestParseReading_SurroundingWhitespace(t *testing.T) {
	value, err := ParseReading("  5678\n")
	if err != nil {
		t.Fatalf("Failed to parse reading: %v", err)
	}
	if value != 5678 {
		t.Errorf("Expected 5678, got %d", value)
	}
}

func TestParseReading_TrailingUnits(t *testing.T) {
	value, err := ParseReading("1234 m³")
	if err != nil {
		t.Fatalf("Failed to parse reading: %v", err)
	}
	if value != 1234 {
		t.Errorf("Expected 1234, got %d", value)
	}
}

func TestParseReading_Zero(t *testing.T) {
	value, err := ParseReading("0")
	if err != nil {
		t.Fatalf("Failed to parse reading: %v", err)
	}
	if value != 0 {
		t.Errorf("Expected 0, got %d", value)
	}
}

func TestParseReading_NoDigits(t *testing.T) {
	_, err := ParseReading("não consegui ler o medidor")
	if !errors.Is(err, ErrNoInteger) {
		t.Errorf("Expected ErrNoInteger, got %v", err)
	}
}

func TestParseReading_Empty(t *testing.T) {
	_, err := ParseReading("")
	if !errors.Is(err, ErrNoInteger) {
		t.Errorf("Expected ErrNoInteger, got %v", err)
	}
}

func TestParseReading_SignOnly(t *testing.T) {
	_, err := ParseReading("-")
	if !errors.Is(err, ErrNoInteger) {
		t.Errorf("Expected ErrNoInteger, got %v", err)
	}
}
