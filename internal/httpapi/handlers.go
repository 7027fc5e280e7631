package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rcamargo/meter-reading-api/internal/service"
)

type uploadRequest struct {
	Image           string `json:"image"`
	CustomerCode    string `json:"customer_code"`
	MeasureDatetime string `json:"measure_datetime"`
	MeasureType     string `json:"measure_type"`
}

type uploadResponse struct {
	ImageURL     string `json:"image_url"`
	MeasureValue int64  `json:"measure_value"`
	MeasureUUID  string `json:"measure_uuid"`
}

type confirmRequest struct {
	MeasureUUID string `json:"measure_uuid"`
	// Pointer so an explicit 0 is distinguishable from a missing field.
	ConfirmedValue *int64 `json:"confirmed_value"`
}

type measureSummary struct {
	MeasureUUID     string    `json:"measure_uuid"`
	MeasureDatetime time.Time `json:"measure_datetime"`
	MeasureType     string    `json:"measure_type"`
	HasConfirmed    bool      `json:"has_confirmed"`
	ImageURL        string    `json:"image_url"`
}

type listResponse struct {
	CustomerCode string           `json:"customer_code"`
	Measures     []measureSummary `json:"measures"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /upload
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidData, descInvalidData)
		return
	}

	result, err := s.svc.Upload(r.Context(), service.UploadInput{
		Image:           req.Image,
		CustomerCode:    req.CustomerCode,
		MeasureDatetime: req.MeasureDatetime,
		MeasureType:     req.MeasureType,
	})
	if err != nil {
		// The contract collapses every upload failure into INVALID_DATA,
		// the logs keep the causes apart.
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			s.logger.Warn("upload rejected: invalid payload", zap.Error(err))
		case errors.Is(err, service.ErrExtractionFailed):
			s.logger.Warn("upload rejected: model response had no reading", zap.Error(err))
		case errors.Is(err, service.ErrVisionFailure):
			s.logger.Error("upload failed: vision model call", zap.Error(err))
		default:
			s.logger.Error("upload failed", zap.Error(err))
		}
		respondError(w, http.StatusBadRequest, codeInvalidData, descInvalidData)
		return
	}

	respondJSON(w, http.StatusOK, uploadResponse{
		ImageURL:     imageURL(r, result.MeasureUUID.String()),
		MeasureValue: result.MeasureValue,
		MeasureUUID:  result.MeasureUUID.String(),
	})
}

// PATCH /confirm
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidData, descInvalidData)
		return
	}
	if req.MeasureUUID == "" || req.ConfirmedValue == nil {
		respondError(w, http.StatusBadRequest, codeInvalidData, descInvalidData)
		return
	}

	err := s.svc.Confirm(r.Context(), req.MeasureUUID, *req.ConfirmedValue)
	switch {
	case errors.Is(err, service.ErrMeasureNotFound):
		respondError(w, http.StatusNotFound, codeMeasureNotFound, descMeasureNotFound)
		return
	case errors.Is(err, service.ErrConfirmationDuplicate):
		respondError(w, http.StatusConflict, codeConfirmationDuplicate, descConfirmationDuplicate)
		return
	case err != nil:
		s.logger.Error("confirm failed", zap.Error(err))
		respondError(w, http.StatusBadRequest, codeInvalidData, descInvalidData)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /{customer_code}/list
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	customerCode := mux.Vars(r)["customer_code"]
	measureType := r.URL.Query().Get("measure_type")

	measures, err := s.svc.List(r.Context(), customerCode, measureType)
	if err != nil {
		if !errors.Is(err, service.ErrMeasuresNotFound) {
			s.logger.Error("list failed", zap.Error(err))
		}
		respondError(w, http.StatusNotFound, codeMeasuresNotFound, descMeasuresNotFound)
		return
	}

	summaries := make([]measureSummary, 0, len(measures))
	for _, m := range measures {
		summaries = append(summaries, measureSummary{
			MeasureUUID:     m.MeasureUUID.String(),
			MeasureDatetime: m.MeasureDatetime,
			MeasureType:     string(m.MeasureType),
			HasConfirmed:    m.HasConfirmed,
			ImageURL:        imageURL(r, m.MeasureUUID.String()),
		})
	}

	respondJSON(w, http.StatusOK, listResponse{
		CustomerCode: customerCode,
		Measures:     summaries,
	})
}

// GET /images/{id}
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	data, err := s.svc.Image(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, codeMeasuresNotFound, descMeasuresNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// imageURL derives the retrieval link from the request's own scheme and
// host, so the stored record never carries a URL that can go stale.
func imageURL(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return fmt.Sprintf("%s://%s/images/%s", scheme, r.Host, id)
}
