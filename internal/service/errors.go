package service

import "errors"

// Upload failures are differentiated internally so logs can tell bad input
// from an upstream vision failure, even though the HTTP contract collapses
// them all into the same INVALID_DATA response.
var (
	ErrInvalidPayload        = errors.New("invalid payload")
	ErrVisionFailure         = errors.New("vision model call failed")
	ErrExtractionFailed      = errors.New("no reading could be extracted from model response")
	ErrMeasureNotFound       = errors.New("measure not found")
	ErrConfirmationDuplicate = errors.New("measure already confirmed")
	ErrMeasuresNotFound      = errors.New("no measures found")
)
