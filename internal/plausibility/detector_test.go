package plausibility_test

import (
	"testing"

	"github.com/rcamargo/meter-reading-api/internal/plausibility"
)

const (
	testSpikeFactor = 10.0
	testMinHistory  = 1
)

func TestCheck_NegativeReading(t *testing.T) {
	detector := plausibility.NewDetector(testSpikeFactor, testMinHistory)

	suspect, reason := detector.Check(-5, []int64{100, 95})

	if !suspect {
		t.Error("Expected negative reading to be flagged")
	}
	if reason != "negative reading" {
		t.Errorf("Expected reason 'negative reading', got '%s'", reason)
	}
}

func TestCheck_DecreasingIndex(t *testing.T) {
	detector := plausibility.NewDetector(testSpikeFactor, testMinHistory)

	suspect, reason := detector.Check(80, []int64{100, 95, 90})

	if !suspect {
		t.Error("Expected decreasing index to be flagged")
	}
	if reason == "" {
		t.Error("Expected a reason for decreasing index")
	}
}

func TestCheck_SuddenJump(t *testing.T) {
	detector := plausibility.NewDetector(testSpikeFactor, testMinHistory)

	suspect, reason := detector.Check(5000, []int64{100, 95})

	if !suspect {
		t.Error("Expected sudden jump to be flagged")
	}
	if reason == "" {
		t.Error("Expected a reason for sudden jump")
	}
}

func TestCheck_NormalProgression(t *testing.T) {
	detector := plausibility.NewDetector(testSpikeFactor, testMinHistory)

	suspect, reason := detector.Check(105, []int64{100, 95, 90})

	if suspect {
		t.Errorf("Expected no finding, but got: %s", reason)
	}
}

func TestCheck_NoHistory(t *testing.T) {
	detector := plausibility.NewDetector(testSpikeFactor, testMinHistory)

	suspect, _ := detector.Check(100, nil)

	if suspect {
		t.Error("Expected no finding with empty history and positive value")
	}
}

func TestCheck_ZeroPreviousReading(t *testing.T) {
	detector := plausibility.NewDetector(testSpikeFactor, testMinHistory)

	suspect, _ := detector.Check(100, []int64{0})

	// A fresh meter starts at zero; any first real reading is fine.
	if suspect {
		t.Error("Expected no jump finding when previous reading is 0")
	}
}
