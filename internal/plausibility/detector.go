package plausibility

import (
	"fmt"
)

// Detector flags extracted readings that look implausible next to the
// customer's recent history. Findings are advisory: the caller logs them and
// lets the confirmation step sort out the real value.
type Detector struct {
	spikeFactor float64
	minHistory  int
}

// NewDetector creates a new plausibility detector with the specified thresholds
func NewDetector(spikeFactor float64, minHistory int) *Detector {
	return &Detector{
		spikeFactor: spikeFactor,
		minHistory:  minHistory,
	}
}

// Check compares value against recent readings of the same meter, newest
// first. A cumulative meter index should never decrease and rarely jumps by
// a large factor between readings.
func (d *Detector) Check(value int64, recentValues []int64) (bool, string) {
	if value < 0 {
		return true, "negative reading"
	}

	if len(recentValues) < d.minHistory || len(recentValues) == 0 {
		return false, ""
	}

	latest := recentValues[0]
	if value < latest {
		return true, fmt.Sprintf("meter index decreased: %d is below previous reading %d", value, latest)
	}

	if latest > 0 && float64(value) > d.spikeFactor*float64(latest) {
		return true, fmt.Sprintf("sudden jump: %d exceeds %.1fx previous reading %d", value, d.spikeFactor, latest)
	}

	return false, ""
}
