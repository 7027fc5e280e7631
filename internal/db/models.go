package db

import (
	"time"

	"github.com/google/uuid"
)

// MeasureType identifies which kind of meter a reading came from.
type MeasureType string

const (
	MeasureTypeWater MeasureType = "WATER"
	MeasureTypeGas   MeasureType = "GAS"
)

// Valid reports whether t is one of the two supported meter types.
func (t MeasureType) Valid() bool {
	return t == MeasureTypeWater || t == MeasureTypeGas
}

// Measure represents a single meter reading in the database. The image URL
// is derived from MeasureUUID at response time and never stored.
type Measure struct {
	MeasureUUID     uuid.UUID
	CustomerCode    string
	MeasureDatetime time.Time
	MeasureType     MeasureType
	HasConfirmed    bool
	MeasureValue    int64
	ImageFile       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
