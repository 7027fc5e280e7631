package httpapi

import (
	"encoding/json"
	"net/http"
)

// Error codes exposed by the HTTP contract.
const (
	codeInvalidData           = "INVALID_DATA"
	codeMeasureNotFound       = "MEASURE_NOT_FOUND"
	codeConfirmationDuplicate = "CONFIRMATION_DUPLICATE"
	codeMeasuresNotFound      = "MEASURES_NOT_FOUND"
)

// Human-readable descriptions, kept in Portuguese for client compatibility.
const (
	descInvalidData           = "Os dados fornecidos no corpo da requisição são inválidos"
	descMeasureNotFound       = "Leitura não encontrada"
	descConfirmationDuplicate = "Leitura já confirmada"
	descMeasuresNotFound      = "Nenhuma leitura encontrada"
)

type errorResponse struct {
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, errorCode, description string) {
	respondJSON(w, status, errorResponse{
		ErrorCode:        errorCode,
		ErrorDescription: description,
	})
}
