package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/section"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/suggest"
)

// DraftStore persists drafts. Getters return nil, nil when nothing matches.
type DraftStore interface {
	CreateDraft(ctx context.Context, d *form.Draft) error
	GetDraft(ctx context.Context, owner string, id uuid.UUID) (*form.Draft, error)
	ListDrafts(ctx context.Context, owner string) ([]*form.Draft, error)
	SaveDraft(ctx context.Context, d *form.Draft) (bool, error)
	DeleteDraft(ctx context.Context, owner string, id uuid.UUID) (bool, error)
}

// Options configures a Server.
type Options struct {
	Addr   string
	Drafts DraftStore
	// Preferences returns the settings backend for an owner. Nil disables
	// the preference endpoints.
	Preferences func(owner string) settings.Backend
	Registry    *section.Registry
	Templates   *form.TemplateCatalog
	// Generator produces suggestions. Nil disables suggestion generation.
	Generator suggest.Generator
	// JWT enables bearer token verification. Nil trusts the X-Owner header.
	JWT            *config.JWTConfig
	RateLimit      *ratelimit.Config
	Entitled       func(owner string) bool
	NudgeThreshold int
	CORSOrigins    []string
	Logger         zerolog.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	drafts      DraftStore
	preferences func(owner string) settings.Backend
	registry    *section.Registry
	templates   *form.TemplateCatalog
	generator   suggest.Generator
	rateLimiter *ratelimit.Limiter
	auth        func(http.Handler) http.Handler
	entitled    func(owner string) bool
	nudgeAt     int
	corsOrigins map[string]bool
	logger      zerolog.Logger
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Drafts == nil {
		return nil, fmt.Errorf("draft store is required")
	}

	s := &Server{
		drafts:      opts.Drafts,
		preferences: opts.Preferences,
		registry:    opts.Registry,
		templates:   opts.Templates,
		generator:   opts.Generator,
		entitled:    opts.Entitled,
		nudgeAt:     opts.NudgeThreshold,
		logger:      opts.Logger,
	}
	if s.registry == nil {
		s.registry = section.DefaultRegistry()
	}
	if s.templates == nil {
		s.templates = form.DefaultTemplates()
	}
	if s.entitled == nil {
		s.entitled = func(string) bool { return false }
	}
	if s.nudgeAt == 0 {
		s.nudgeAt = form.DefaultNudgeThreshold
	}
	if len(opts.CORSOrigins) > 0 {
		s.corsOrigins = make(map[string]bool, len(opts.CORSOrigins))
		for _, o := range opts.CORSOrigins {
			s.corsOrigins[o] = true
		}
	}

	rl := opts.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	if opts.JWT != nil {
		s.auth = middleware.AuthMiddleware(NewJWTService(opts.JWT).AsTokenValidator())
	} else {
		s.auth = middleware.HeaderOwnerMiddleware()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /sections", s.handleListSections)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	// Drafts
	mux.Handle("POST /drafts", s.owned(s.handleCreateDraft))
	mux.Handle("GET /drafts", s.owned(s.handleListDrafts))
	mux.Handle("GET /drafts/{id}", s.owned(s.handleGetDraft))
	mux.Handle("DELETE /drafts/{id}", s.owned(s.handleDeleteDraft))
	mux.Handle("PUT /drafts/{id}/template", s.owned(s.handleSelectTemplate))
	mux.Handle("GET /drafts/{id}/completion", s.owned(s.handleCompletion))

	// Sections and entries
	const entry = "/drafts/{id}/sections/{section}/entries/{index}"
	mux.Handle("GET /drafts/{id}/sections/{section}", s.owned(s.handleGetSection))
	mux.Handle("POST /drafts/{id}/sections/{section}/entries", s.owned(s.handleAddEntry))
	mux.Handle("DELETE "+entry, s.owned(s.handleRemoveEntry))
	mux.Handle("PUT "+entry+"/fields/{field}", s.owned(s.handleSetField))
	mux.Handle("POST "+entry+"/toggle", s.owned(s.handleToggleEntry))
	mux.Handle("POST "+entry+"/suggestions", s.owned(s.handleGenerateSuggestions))
	mux.Handle("POST "+entry+"/suggestions/apply", s.owned(s.handleApplySuggestion))

	// Preferences
	mux.Handle("GET /preferences", s.owned(s.handleGetPreferences))
	mux.Handle("PUT /preferences/{key}", s.owned(s.handleSetPreference))

	addr := opts.Addr
	if addr == "" {
		addr = config.DefaultAddr
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // Suggestion generation waits on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info().Msg("server stopped")
	return nil
}

// Close releases background resources.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// ownedHandler is a handler that knows the request owner.
type ownedHandler func(w http.ResponseWriter, r *http.Request, owner string)

// owned runs h behind the auth middleware.
func (s *Server) owned(h ownedHandler) http.Handler {
	return s.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := middleware.GetOwner(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h(w, r, owner)
	}))
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if s.corsOrigins != nil {
			origin = ""
			if o := r.Header.Get("Origin"); s.corsOrigins[o] {
				origin = o
				w.Header().Add("Vary", "Origin")
			}
		}
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.OwnerHeader)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		event := s.logger.Info()
		if rec.status >= http.StatusInternalServerError {
			event = s.logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status with HTTPStatus. Internal errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	if status == http.StatusBadGateway {
		s.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("upstream failure")
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

const maxBodyBytes = 1 << 20

// pathIndex parses the {index} path value.
func pathIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return i, nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn().
		Str("client", s.extractClientID(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
