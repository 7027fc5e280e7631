package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rcamargo/meter-reading-api/internal/config"
	"github.com/rcamargo/meter-reading-api/internal/db"
	"github.com/rcamargo/meter-reading-api/internal/httpapi"
	"github.com/rcamargo/meter-reading-api/internal/mq"
	"github.com/rcamargo/meter-reading-api/internal/plausibility"
	"github.com/rcamargo/meter-reading-api/internal/repository"
	"github.com/rcamargo/meter-reading-api/internal/service"
	"github.com/rcamargo/meter-reading-api/internal/validator"
	"github.com/rcamargo/meter-reading-api/internal/vision"
)

func startServer(
	lc fx.Lifecycle,
	server *httpapi.Server,
	cfg *config.Config,
	logger *zap.Logger,
) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: server.Routes(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting http server", zap.Int("port", cfg.HTTPPort))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shut down http server", zap.Error(err))
				return err
			}
			logger.Info("http server stopped gracefully")
			return nil
		},
	})
}

// ProvideDBPool creates a new database pool instance
func ProvideDBPool(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
	return db.NewPool(lc, logger, cfg.Database.URL)
}

// ProvideMeasureStore creates the measure repository
func ProvideMeasureStore(pool *pgxpool.Pool) service.MeasureStore {
	return repository.NewRepository(pool)
}

// ProvideMeterReader creates the vision model client
func ProvideMeterReader(cfg *config.Config) service.MeterReader {
	return vision.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
}

// ProvideMQConnection creates a new RabbitMQ connection instance
func ProvideMQConnection(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*mq.Connection, error) {
	return mq.NewConnection(lc, logger, cfg.RabbitMQ.URL)
}

// ProvideEventPublisher creates the reading-event publisher
func ProvideEventPublisher(conn *mq.Connection, cfg *config.Config, logger *zap.Logger) (service.EventPublisher, error) {
	return mq.NewPublisher(conn, cfg.RabbitMQ.EventsExchange, logger)
}

// ProvidePlausibilityDetector creates a new plausibility detector instance
func ProvidePlausibilityDetector(cfg *config.Config) *plausibility.Detector {
	return plausibility.NewDetector(cfg.Plausibility.SpikeFactor, cfg.Plausibility.MinHistory)
}

// ProvideValidator creates a new validator instance
func ProvideValidator() *validator.Validator {
	return validator.NewValidator()
}

// ProvideReadingService creates a new reading service instance
func ProvideReadingService(
	store service.MeasureStore,
	reader service.MeterReader,
	publisher service.EventPublisher,
	detector *plausibility.Detector,
	validator *validator.Validator,
	cfg *config.Config,
	logger *zap.Logger,
) *service.ReadingService {
	return service.NewReadingService(store, reader, publisher, detector, validator, cfg, logger)
}

// ProvideHTTPServer creates the HTTP API server
func ProvideHTTPServer(svc *service.ReadingService, cfg *config.Config, logger *zap.Logger) *httpapi.Server {
	return httpapi.NewServer(svc, cfg, logger)
}
