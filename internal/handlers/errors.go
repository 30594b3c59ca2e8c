package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mythworld/internal/models"
	"mythworld/internal/service"
	"mythworld/internal/validation"
)

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		if status >= http.StatusInternalServerError {
			slog.Error(logMsg, "status", status, "error", err)
		} else {
			slog.Debug(logMsg, "status", status, "error", err)
		}
	}

	respondWithJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps service and model sentinels to HTTP statuses
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		respondWithError(w, http.StatusConflict, ErrTransitionNotAllowed, logMsg, err)
	case errors.Is(err, service.ErrParentLocked):
		respondWithError(w, http.StatusForbidden, ErrParentLocked, logMsg, err)
	case errors.Is(err, models.ErrUnknownControl):
		respondWithError(w, http.StatusBadRequest, ErrUnknownControl, logMsg, err)
	case errors.Is(err, models.ErrControlType):
		respondWithError(w, http.StatusBadRequest, ErrInvalidControlValue, logMsg, err)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

// maxRequestBodyBytes caps every JSON request body
const maxRequestBodyBytes = 64 << 10

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "failed to decode request", err)
		return false
	}

	if err := validation.Struct(dst); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			slog.Debug("request failed validation", "error", err)
			respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidRequestBody, Fields: fields})
			return false
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to validate request", err)
		return false
	}
	return true
}
