package validator_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rcamargo/meter-reading-api/internal/db"
	"github.com/rcamargo/meter-reading-api/internal/validator"
)

func validUpload() validator.UploadData {
	return validator.UploadData{
		Image:           "aGVsbG8=",
		CustomerCode:    "C1",
		MeasureDatetime: "2024-08-29T10:30:00Z",
		MeasureType:     "WATER",
	}
}

func TestValidateUpload_Valid(t *testing.T) {
	v := validator.NewValidator()

	dt, mt, err := v.ValidateUpload(validUpload())
	if err != nil {
		t.Fatalf("Expected valid payload, got error: %v", err)
	}

	expected := time.Date(2024, 8, 29, 10, 30, 0, 0, time.UTC)
	if !dt.Equal(expected) {
		t.Errorf("Expected datetime %v, got %v", expected, dt)
	}
	if mt != db.MeasureTypeWater {
		t.Errorf("Expected WATER, got %s", mt)
	}
}

func TestValidateUpload_MissingFields(t *testing.T) {
	v := validator.NewValidator()

	cases := map[string]func(*validator.UploadData){
		"image":            func(d *validator.UploadData) { d.Image = "" },
		"customer_code":    func(d *validator.UploadData) { d.CustomerCode = "" },
		"measure_datetime": func(d *validator.UploadData) { d.MeasureDatetime = "" },
		"measure_type":     func(d *validator.UploadData) { d.MeasureType = "" },
	}

	for field, clear := range cases {
		data := validUpload()
		clear(&data)
		if _, _, err := v.ValidateUpload(data); err == nil {
			t.Errorf("Expected error for missing %s", field)
		}
	}
}

func TestValidateUpload_LowercaseTypeNormalized(t *testing.T) {
	v := validator.NewValidator()

	data := validUpload()
	data.MeasureType = "gas"

	_, mt, err := v.ValidateUpload(data)
	if err != nil {
		t.Fatalf("Expected valid payload, got error: %v", err)
	}
	if mt != db.MeasureTypeGas {
		t.Errorf("Expected GAS, got %s", mt)
	}
}

func TestValidateUpload_UnknownType(t *testing.T) {
	v := validator.NewValidator()

	data := validUpload()
	data.MeasureType = "ELECTRICITY"

	if _, _, err := v.ValidateUpload(data); err == nil {
		t.Error("Expected error for unknown measure_type")
	}
}

func TestValidateUpload_CustomerCodeTooLong(t *testing.T) {
	v := validator.NewValidator()

	data := validUpload()
	data.CustomerCode = strings.Repeat("a", 37)

	if _, _, err := v.ValidateUpload(data); err == nil {
		t.Error("Expected error for oversized customer_code")
	}
}

func TestValidateUpload_BadDatetime(t *testing.T) {
	v := validator.NewValidator()

	data := validUpload()
	data.MeasureDatetime = "yesterday"

	if _, _, err := v.ValidateUpload(data); err == nil {
		t.Error("Expected error for unparseable measure_datetime")
	}
}
