package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rcamargo/meter-reading-api/internal/config"
	"github.com/rcamargo/meter-reading-api/internal/logging"
	"github.com/rcamargo/meter-reading-api/internal/service"
)

// Server hosts the HTTP handlers for the meter reading API.
type Server struct {
	svc            *service.ReadingService
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewServer creates a new HTTP server
func NewServer(svc *service.ReadingService, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		svc:            svc,
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Routes builds the router. The catch-all list route is registered last so
// the fixed paths win.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/confirm", s.handleConfirm).Methods(http.MethodPatch)
	r.HandleFunc("/images/{id}", s.handleImage).Methods(http.MethodGet)
	r.HandleFunc("/{customer_code}/list", s.handleList).Methods(http.MethodGet)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLogger := logging.WithRequestID(s.logger, uuid.New().String())

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		reqLogger.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
