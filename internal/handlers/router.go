package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mythworld/internal/audio"
	"mythworld/internal/security"
	"mythworld/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig carries everything the HTTP layer is wired to
type RouterConfig struct {
	App         *service.App
	Tokens      *security.TokenIssuer
	Email       *service.EmailService
	TTS         *audio.TTSService
	Limiter     *security.RateLimiter
	Store       Pinger
	CORSOrigins []string
	Logger      *slog.Logger
	Debug       bool
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig) http.Handler {
	mw := NewMiddleware(cfg.App, cfg.Tokens, cfg.Limiter, cfg.Logger)
	child := NewChildHandler(cfg.App, cfg.TTS)
	parent := NewParentHandler(cfg.App, cfg.Tokens, cfg.Email)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
		Debug:          cfg.Debug,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", healthz(cfg.Store))

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RateLimit)

		r.Get("/state", child.State)
		r.Post("/navigate", child.Navigate)

		r.Get("/profiles", child.Profiles)
		r.Post("/profiles/{id}/select", child.SelectProfile)

		r.Get("/stories", child.Stories)
		r.Post("/stories/complete", child.CompleteStory)
		r.Get("/stories/{id}/vocabulary/{term}/audio", child.VocabularyAudio)

		r.Get("/games", child.Games)
		r.Post("/games/play", child.PlayGame)
		r.Get("/quests", child.Quests)

		r.Route("/parent", func(r chi.Router) {
			r.Post("/unlock", parent.Unlock)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireParent)
				r.Get("/dashboard", parent.Dashboard)
				r.Put("/controls", parent.SetControl)
				r.Post("/report", parent.Report)
				r.Post("/exit", parent.Exit)
			})
		})
	})

	return r
}

func healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.PingContext(r.Context()); err != nil {
				respondWithError(w, http.StatusServiceUnavailable, "Storage unavailable", "health check failed", err)
				return
			}
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
