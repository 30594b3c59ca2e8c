package handlers

import (
	"log/slog"
	"net/http"

	"mythworld/internal/models"
	"mythworld/internal/security"
	"mythworld/internal/service"
)

// ParentHandler serves the PIN gate and the parent dashboard
type ParentHandler struct {
	app    *service.App
	tokens *security.TokenIssuer
	email  *service.EmailService
}

// NewParentHandler creates a new parent handler. A nil email service disables reports.
func NewParentHandler(app *service.App, tokens *security.TokenIssuer, email *service.EmailService) *ParentHandler {
	return &ParentHandler{
		app:    app,
		tokens: tokens,
		email:  email,
	}
}

type unlockRequest struct {
	Pin string `json:"pin"`
}

type unlockResponse struct {
	Token string      `json:"token"`
	Mode  models.Mode `json:"mode"`
}

type controlRequest struct {
	Key   string      `json:"key" validate:"required,controlkey"`
	Value interface{} `json:"value"`
}

// Unlock checks a PIN from the PIN entry screen and hands out a dashboard token
func (h *ParentHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.app.UnlockParent(req.Pin)
	if err != nil {
		respondWithServiceError(w, "unlock rejected", err)
		return
	}
	if !result.OK {
		slog.Info("parent unlock failed")
		respondWithError(w, http.StatusUnauthorized, result.Message, "", nil)
		return
	}

	token, err := h.tokens.Issue(result.SessionID)
	if err != nil {
		// Without a token the dashboard is unreachable, so close it again
		if exitErr := h.app.ExitParent(); exitErr != nil {
			slog.Error("failed to close dashboard", "error", exitErr)
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to issue parent token", err)
		return
	}

	slog.Info("parent dashboard unlocked")
	respondWithJSON(w, http.StatusOK, unlockResponse{Token: token, Mode: models.ModeDashboard})
}

// Dashboard returns per-child progress rows and the current controls
func (h *ParentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.Dashboard()
	if err != nil {
		respondWithServiceError(w, "dashboard unavailable", err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SetControl changes one parent control
func (h *ParentHandler) SetControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Value == nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidControlValue, "", nil)
		return
	}

	controls, err := h.app.SetControl(models.ControlKey(req.Key), req.Value)
	if err != nil {
		respondWithServiceError(w, "control update rejected", err)
		return
	}

	slog.Info("parent control changed", "key", req.Key, "value", req.Value)
	respondWithJSON(w, http.StatusOK, controls)
}

// Report emails the dashboard rows to the parent
func (h *ParentHandler) Report(w http.ResponseWriter, r *http.Request) {
	if h.email == nil || !h.email.IsEnabled() {
		respondWithError(w, http.StatusServiceUnavailable, ErrEmailUnavailable, "", nil)
		return
	}

	view, err := h.app.Dashboard()
	if err != nil {
		respondWithServiceError(w, "dashboard unavailable", err)
		return
	}
	if err := h.email.SendProgressReport(r.Context(), view.Rows); err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to send report", "failed to send progress report", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// Exit leaves the dashboard and invalidates the token
func (h *ParentHandler) Exit(w http.ResponseWriter, r *http.Request) {
	if err := h.app.ExitParent(); err != nil {
		respondWithServiceError(w, "exit rejected", err)
		return
	}

	slog.Info("parent dashboard closed")
	respondWithJSON(w, http.StatusOK, map[string]models.Mode{"mode": models.ModeHome})
}
