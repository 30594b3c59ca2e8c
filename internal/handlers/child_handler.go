package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mythworld/internal/audio"
	"mythworld/internal/content"
	"mythworld/internal/models"
	"mythworld/internal/service"

	"github.com/go-chi/chi/v5"
)

// ChildHandler serves the child-facing screens: profiles, stories, games and quests
type ChildHandler struct {
	app *service.App
	tts *audio.TTSService
}

// NewChildHandler creates a new child handler. A nil tts disables pronunciation audio.
func NewChildHandler(app *service.App, tts *audio.TTSService) *ChildHandler {
	return &ChildHandler{app: app, tts: tts}
}

type navigateRequest struct {
	Action string `json:"action" validate:"required,action"`
}

// State returns the whole view state
func (h *ChildHandler) State(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.app.Snapshot())
}

// Profiles lists every child profile
func (h *ChildHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.app.Profiles())
}

// SelectProfile makes a profile active and returns to the home screen. An
// unknown id leaves the state untouched and still answers with the snapshot.
func (h *ChildHandler) SelectProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.app.SelectProfile(id) {
		slog.Info("profile selected", "profile_id", id)
	} else {
		slog.Debug("ignored unknown profile", "profile_id", id)
	}
	respondWithJSON(w, http.StatusOK, h.app.Snapshot())
}

// Stories lists stories for ?ageGroup=, or for the active profile when omitted.
// An unknown group matches nothing and yields an empty list.
func (h *ChildHandler) Stories(w http.ResponseWriter, r *http.Request) {
	ageGroup := r.URL.Query().Get("ageGroup")
	if ageGroup == "" {
		respondWithJSON(w, http.StatusOK, h.app.StoriesForActiveProfile())
		return
	}
	respondWithJSON(w, http.StatusOK, content.StoriesForAgeGroup(models.AgeGroup(ageGroup)))
}

// Games lists the mini-games
func (h *ChildHandler) Games(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.app.Games())
}

// Quests lists the temple quest regions
func (h *ChildHandler) Quests(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.app.Quests())
}

// CompleteStory credits the active profile for finishing a story
func (h *ChildHandler) CompleteStory(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.CompleteStory()
	if err != nil {
		respondWithProgressError(w, err)
		return
	}

	slog.Info("story completed", "profile_id", p.ID, "points", p.Points, "stars", p.Stars)
	respondWithJSON(w, http.StatusOK, p)
}

// PlayGame credits the active profile for playing a mini-game
func (h *ChildHandler) PlayGame(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.RegisterGamePlay()
	if err != nil {
		respondWithProgressError(w, err)
		return
	}

	slog.Info("game played", "profile_id", p.ID, "points", p.Points)
	respondWithJSON(w, http.StatusOK, p)
}

// Navigate applies a navigation action such as open-stories or back
func (h *ChildHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	mode, err := h.app.Navigate(models.Action(req.Action))
	if err != nil {
		respondWithServiceError(w, "navigation rejected", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]models.Mode{"mode": mode})
}

// VocabularyAudio streams the pronunciation of a story's vocabulary term
func (h *ChildHandler) VocabularyAudio(w http.ResponseWriter, r *http.Request) {
	if !h.app.Controls().AudioEnabled {
		respondWithError(w, http.StatusForbidden, ErrAudioDisabled, "", nil)
		return
	}

	story, ok := content.StoryByID(chi.URLParam(r, "id"))
	if !ok {
		respondWithError(w, http.StatusNotFound, ErrStoryNotFound, "", nil)
		return
	}
	term, ok := story.FindTerm(chi.URLParam(r, "term"))
	if !ok {
		respondWithError(w, http.StatusNotFound, ErrTermNotFound, "", nil)
		return
	}
	if h.tts == nil {
		respondWithError(w, http.StatusServiceUnavailable, ErrAudioUnavailable, "", nil)
		return
	}

	path, err := h.tts.Pronunciation(r.Context(), story.ID+"-"+term.Term, term.Term)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, audio.ErrEmptyText) {
			status = http.StatusNotFound
		}
		respondWithError(w, status, ErrAudioUnavailable, "failed to generate pronunciation", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

func respondWithProgressError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNoActiveProfile) {
		respondWithError(w, http.StatusNotFound, ErrNoActiveProfile, "", nil)
		return
	}
	respondWithServiceError(w, "progress not credited", err)
}
