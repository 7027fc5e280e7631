package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rcamargo/meter-reading-api/internal/config"
	"github.com/rcamargo/meter-reading-api/internal/db"
	"github.com/rcamargo/meter-reading-api/internal/mq"
	"github.com/rcamargo/meter-reading-api/internal/plausibility"
	"github.com/rcamargo/meter-reading-api/internal/repository"
	"github.com/rcamargo/meter-reading-api/internal/validator"
	"github.com/rcamargo/meter-reading-api/internal/vision"
)

const historyLimit = 10

// MeasureStore is the persistence surface the service needs. Lookups that
// match no row return repository.ErrNotFound.
type MeasureStore interface {
	Insert(ctx context.Context, m *db.Measure) error
	GetByUUID(ctx context.Context, measureUUID uuid.UUID) (*db.Measure, error)
	ListByCustomer(ctx context.Context, customerCode string, measureType *db.MeasureType) ([]db.Measure, error)
	Confirm(ctx context.Context, measureUUID uuid.UUID, confirmedValue int64) (int64, error)
	RecentValues(ctx context.Context, customerCode string, measureType db.MeasureType, limit int) ([]int64, error)
}

// MeterReader extracts the integer reading from a base64 meter photo.
type MeterReader interface {
	ReadMeter(ctx context.Context, imageBase64 string) (int64, error)
}

// EventPublisher publishes reading lifecycle events.
type EventPublisher interface {
	PublishReadingEvent(ctx context.Context, event mq.ReadingEvent, routingKey string) error
}

// UploadInput is the raw upload request payload.
type UploadInput struct {
	Image           string
	CustomerCode    string
	MeasureDatetime string
	MeasureType     string
}

// UploadResult carries what the upload handler needs to build its response.
type UploadResult struct {
	MeasureUUID  uuid.UUID
	MeasureValue int64
}

// ReadingService implements the meter reading operations
type ReadingService struct {
	store     MeasureStore
	reader    MeterReader
	publisher EventPublisher
	detector  *plausibility.Detector
	validator *validator.Validator
	cfg       *config.Config
	logger    *zap.Logger
}

// NewReadingService creates a new reading service
func NewReadingService(
	store MeasureStore,
	reader MeterReader,
	publisher EventPublisher,
	detector *plausibility.Detector,
	validator *validator.Validator,
	cfg *config.Config,
	logger *zap.Logger,
) *ReadingService {
	return &ReadingService{
		store:     store,
		reader:    reader,
		publisher: publisher,
		detector:  detector,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Upload validates the payload, asks the vision model for the reading, and
// persists a new unconfirmed measure.
func (s *ReadingService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	measureDatetime, measureType, err := s.validator.ValidateUpload(validator.UploadData{
		Image:           in.Image,
		CustomerCode:    in.CustomerCode,
		MeasureDatetime: in.MeasureDatetime,
		MeasureType:     in.MeasureType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	value, err := s.reader.ReadMeter(ctx, in.Image)
	if err != nil {
		if errors.Is(err, vision.ErrNoInteger) {
			return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrVisionFailure, err)
	}

	measure := &db.Measure{
		MeasureUUID:     uuid.New(),
		CustomerCode:    in.CustomerCode,
		MeasureDatetime: measureDatetime,
		MeasureType:     measureType,
		HasConfirmed:    false,
		MeasureValue:    value,
		ImageFile:       in.Image,
	}

	// Advisory only: a suspect extraction still gets stored, the client
	// corrects it through the confirm step.
	if recent, histErr := s.store.RecentValues(ctx, measure.CustomerCode, measureType, historyLimit); histErr != nil {
		s.logger.Warn("failed to load history for plausibility check", zap.Error(histErr))
	} else if suspect, reason := s.detector.Check(value, recent); suspect {
		s.logger.Warn("implausible reading extracted",
			zap.String("measure_uuid", measure.MeasureUUID.String()),
			zap.String("customer_code", measure.CustomerCode),
			zap.Int64("value", value),
			zap.String("reason", reason),
		)
	}

	if err := s.store.Insert(ctx, measure); err != nil {
		return nil, fmt.Errorf("failed to persist measure: %w", err)
	}

	s.publishEvent(ctx, measure, value, false, s.cfg.RabbitMQ.CreatedRoutingKey)

	s.logger.Info("measure created",
		zap.String("measure_uuid", measure.MeasureUUID.String()),
		zap.String("customer_code", measure.CustomerCode),
		zap.String("measure_type", string(measureType)),
		zap.Int64("measure_value", value),
	)

	return &UploadResult{
		MeasureUUID:  measure.MeasureUUID,
		MeasureValue: value,
	}, nil
}

// Confirm applies the human-confirmed value exactly once.
func (s *ReadingService) Confirm(ctx context.Context, measureUUID string, confirmedValue int64) error {
	id, err := uuid.Parse(measureUUID)
	if err != nil {
		return ErrMeasureNotFound
	}

	measure, err := s.store.GetByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMeasureNotFound
		}
		return fmt.Errorf("failed to load measure: %w", err)
	}
	if measure.HasConfirmed {
		return ErrConfirmationDuplicate
	}

	rows, err := s.store.Confirm(ctx, id, confirmedValue)
	if err != nil {
		return fmt.Errorf("failed to confirm measure: %w", err)
	}
	// Zero rows means another confirmation won the race between our lookup
	// and the guarded update.
	if rows == 0 {
		return ErrConfirmationDuplicate
	}

	s.publishEvent(ctx, measure, confirmedValue, true, s.cfg.RabbitMQ.ConfirmedRoutingKey)

	s.logger.Info("measure confirmed",
		zap.String("measure_uuid", measureUUID),
		zap.Int64("confirmed_value", confirmedValue),
	)

	return nil
}

// List returns a customer's measures, optionally filtered by meter type.
func (s *ReadingService) List(ctx context.Context, customerCode, measureType string) ([]db.Measure, error) {
	var filter *db.MeasureType
	if measureType != "" {
		mt := db.MeasureType(strings.ToUpper(measureType))
		filter = &mt
	}

	measures, err := s.store.ListByCustomer(ctx, customerCode, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list measures: %w", err)
	}
	if len(measures) == 0 {
		return nil, ErrMeasuresNotFound
	}

	return measures, nil
}

// Image returns the decoded image bytes for a measure. Any failure along
// the way reads as "not found" to the caller.
func (s *ReadingService) Image(ctx context.Context, id string) ([]byte, error) {
	measureUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrMeasuresNotFound
	}

	measure, err := s.store.GetByUUID(ctx, measureUUID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("failed to load measure for image fetch", zap.Error(err))
		}
		return nil, ErrMeasuresNotFound
	}

	data, err := base64.StdEncoding.DecodeString(measure.ImageFile)
	if err != nil {
		s.logger.Error("stored image is not valid base64",
			zap.String("measure_uuid", id),
			zap.Error(err),
		)
		return nil, ErrMeasuresNotFound
	}

	return data, nil
}

func (s *ReadingService) publishEvent(ctx context.Context, m *db.Measure, value int64, confirmed bool, routingKey string) {
	event := mq.ReadingEvent{
		MeasureUUID:  m.MeasureUUID.String(),
		CustomerCode: m.CustomerCode,
		MeasureType:  string(m.MeasureType),
		MeasureValue: value,
		Confirmed:    confirmed,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.publisher.PublishReadingEvent(ctx, event, routingKey); err != nil {
		// Log error but don't fail the request over a broker hiccup
		s.logger.Error("failed to publish reading event",
			zap.Error(err),
			zap.String("measure_uuid", event.MeasureUUID),
			zap.String("routing_key", routingKey),
		)
	}
}
