package handlers

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"mythworld/internal/security"
	"mythworld/internal/service"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	app     *service.App
	tokens  *security.TokenIssuer
	limiter *security.RateLimiter
	logger  *slog.Logger
}

// NewMiddleware creates a new middleware instance. A nil limiter disables rate limiting.
func NewMiddleware(app *service.App, tokens *security.TokenIssuer, limiter *security.RateLimiter, logger *slog.Logger) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{
		app:     app,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

// RequireParent admits requests carrying the bearer token of the open dashboard visit
func (m *Middleware) RequireParent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		sessionID, err := m.tokens.Parse(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "rejected parent token", err)
			return
		}
		if !m.app.ParentSessionActive(sessionID) {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	if m.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		if !m.limiter.Allow(client) {
			m.logger.Warn("rate limit exceeded", "client", client, "path", r.URL.Path)
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP drops the port from RemoteAddr. RealIP leaves a bare address, which
// is used as is.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestLogger logs one line per request with its status and duration
func (m *Middleware) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		m.logger.Log(r.Context(), level, "request",
			"req_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
