package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/poiesic/answerit/core"
)

// Engine is the part of the answering engine the HTTP layer needs.
type Engine interface {
	Answer(ctx context.Context, question string) (*core.Response, error)
	Feedback(ctx context.Context, question, answer string, verdict core.Verdict) (*core.FeedbackResult, error)
}

// Server exposes the engine over HTTP.
type Server struct {
	engine Engine
	stats  func() any
	logger *slog.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithStats exposes a stats snapshot function on GET /stats.
func WithStats(stats func() any) Option {
	return func(s *Server) {
		s.stats = stats
	}
}

// ErrEngineRequired is returned when a server is created without an engine.
var ErrEngineRequired = errors.New("engine required")

// New creates the HTTP server around engine.
func New(engine Engine, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Server{
		engine: engine,
		logger: slog.Default().With("component", "http"),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Post("/chat", s.handleChat)
	r.Post("/feedback", s.handleFeedback)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	s.router = r
	return s, nil
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer     string      `json:"answer"`
	Confidence float64     `json:"confidence"`
	Method     string      `json:"method"`
	Sources    []sourceRef `json:"sources,omitempty"`
}

type sourceRef struct {
	Question   string  `json:"question"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := s.engine.Answer(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuestion) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		s.logger.Error("answer failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := chatResponse{
		Answer:     resp.Answer,
		Confidence: resp.Confidence,
		Method:     resp.Method,
	}
	for _, src := range resp.Sources {
		out.Sources = append(out.Sources, sourceRef(src))
	}
	writeJSON(w, http.StatusOK, out)
}

type feedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
}

type feedbackResponse struct {
	Status       string `json:"status"`
	Action       string `json:"action"`
	BlockedCount int    `json:"blocked_count"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	verdict, ok := core.ParseVerdict(req.Feedback)
	if !ok {
		writeError(w, http.StatusBadRequest, "feedback must be \"like\" or \"dislike\"")
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "question and answer are required")
		return
	}

	result, err := s.engine.Feedback(r.Context(), req.Question, req.Answer, verdict)
	if err != nil {
		s.logger.Error("feedback failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, feedbackResponse{
		Status:       result.Status,
		Action:       result.Action,
		BlockedCount: result.BlockedCount,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusNotFound, "stats not enabled")
		return
	}
	writeJSON(w, http.StatusOK, s.stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
