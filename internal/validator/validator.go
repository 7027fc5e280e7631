package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcamargo/meter-reading-api/internal/db"
	"github.com/rcamargo/meter-reading-api/tools/timeparser"
)

const maxCustomerCodeLen = 36

// UploadData represents the raw upload payload before validation
type UploadData struct {
	Image           string
	CustomerCode    string
	MeasureDatetime string
	MeasureType     string
}

// Validator checks upload payloads before they reach the vision model
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUpload checks field presence and shape, returning the parsed
// reading timestamp and normalized meter type.
func (v *Validator) ValidateUpload(data UploadData) (time.Time, db.MeasureType, error) {
	if data.Image == "" {
		return time.Time{}, "", fmt.Errorf("image is required")
	}
	if data.CustomerCode == "" {
		return time.Time{}, "", fmt.Errorf("customer_code is required")
	}
	if len(data.CustomerCode) > maxCustomerCodeLen {
		return time.Time{}, "", fmt.Errorf("customer_code exceeds %d characters", maxCustomerCodeLen)
	}
	if data.MeasureDatetime == "" {
		return time.Time{}, "", fmt.Errorf("measure_datetime is required")
	}
	if data.MeasureType == "" {
		return time.Time{}, "", fmt.Errorf("measure_type is required")
	}

	measureType := db.MeasureType(strings.ToUpper(data.MeasureType))
	if !measureType.Valid() {
		return time.Time{}, "", fmt.Errorf("measure_type must be WATER or GAS, got '%s'", data.MeasureType)
	}

	measureDatetime, err := timeparser.ParseMeasureDatetime(data.MeasureDatetime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid measure_datetime: %w", err)
	}

	return measureDatetime, measureType, nil
}
