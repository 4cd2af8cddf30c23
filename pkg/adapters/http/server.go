package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/internal/presentation/graph"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
	"github.com/aretw0/storyline/pkg/runner"
	"github.com/aretw0/storyline/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes a session manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	metrics     http.Handler
	logger      *slog.Logger
	version     string
	endingTitle func(domain.EndingKind) string
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts h (usually a promhttp handler) on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the structured logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithEndingTitle configures how ending kinds are named in session views.
func WithEndingTitle(title func(domain.EndingKind) string) Option {
	return func(s *Server) {
		s.endingTitle = title
	}
}

// NewServer creates a Server over the given sessions.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.StartSession)
		r.Get("/", s.ListSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/restart", s.RestartSession)
			r.Get("/events", s.SubscribeEvents)
			// Choice IDs default to "<node>/<n>", so the ID is the rest of the path.
			r.Post("/choices/*", s.Choose)
		})
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartRequest is the optional body of POST /sessions.
type StartRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err))
		return
	}

	id, state, err := s.Sessions.Start(r.Context(), body.SessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, s.view(id, state))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	state, err := s.Sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.view(id, state))
}

// Choose handles POST /sessions/{sessionID}/choices/{choiceID}.
func (s *Server) Choose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	choiceID, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err == nil {
		choiceID, err = runner.SanitizeInput(choiceID)
	}
	if err != nil || choiceID == "" {
		s.writeError(w, fmt.Errorf("%w: invalid choice id", errBadRequest))
		return
	}

	v, err := s.apply(r, id, func(pt ports.Playthrough) error {
		return pt.Choose(choiceID)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

// RestartSession handles POST /sessions/{sessionID}/restart.
func (s *Server) RestartSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	v, err := s.apply(r, id, func(pt ports.Playthrough) error {
		pt.Restart()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

// apply runs fn on the session and publishes the resulting view to its
// subscribers while still holding the session lock, so events keep the order
// of the changes.
func (s *Server) apply(r *http.Request, id string, fn func(ports.Playthrough) error) (SessionView, error) {
	var v SessionView
	err := s.Sessions.Do(r.Context(), id, func(pt ports.Playthrough) error {
		if err := fn(pt); err != nil {
			return err
		}
		v = s.view(id, pt.Snapshot())
		s.broadcast(v)
		return nil
	})
	return v, err
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /graph. With ?session_id= the session's path is highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("session_id"); id != "" {
		state, err := s.Sessions.Get(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.NewOverlay(state)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(s.Sessions.Graph(), overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	g := s.Sessions.Graph()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "storyline-http",
		"version": s.version,
		"story":   g.Title(),
		"nodes":   g.Len(),
	})
}

func (s *Server) broadcast(v SessionView) {
	bytes, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode session event", "session_id", v.SessionID, "err", err)
		return
	}
	s.Streams.Broadcast(v.SessionID, string(bytes))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
