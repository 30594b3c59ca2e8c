package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mythworld/internal/models"
	"mythworld/internal/service"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != `{"error":"Teapot"}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRespondWithErrorLogsServerErrors(t *testing.T) {
	var buf bytes.Buffer
	defer slog.SetDefault(slog.Default())
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	recorder := httptest.NewRecorder()
	respondWithError(recorder, 500, "Internal server error", "", errors.New("boom"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to contain user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to contain error, got %q", logOutput)
	}
}

func TestRespondWithServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", fmt.Errorf("back: %w", service.ErrInvalidTransition), http.StatusConflict},
		{"locked", service.ErrParentLocked, http.StatusForbidden},
		{"unknown control", fmt.Errorf("set: %w", models.ErrUnknownControl), http.StatusBadRequest},
		{"wrong type", fmt.Errorf("set: %w", models.ErrControlType), http.StatusBadRequest},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithServiceError(recorder, "", tt.err)
			if recorder.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, recorder.Code)
			}
		})
	}
}
