// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontendfusion/signup/internal/domain/signup"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// NewSession starts a fresh form instance (a page load).
	NewSession(ctx context.Context) (string, *signup.Form, error)
	// Session resolves an id, starting a new session when it is unknown.
	Session(ctx context.Context, id string) (string, *signup.Form, error)
	// Submit runs one submit attempt on the session's form.
	Submit(ctx context.Context, id string, data signup.FormData) (string, signup.Outcome, error)
	// EndSession closes the session's form.
	EndSession(ctx context.Context, id string)
	// Vacancies lists the positions offered on the form.
	Vacancies() []string
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	vacanciesHandler  *VacanciesHandler
	submissionHandler *SubmissionHandler
	sessionHandler    *SessionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	cookies := Cookies{Secure: o.secureCookie}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		vacanciesHandler:  NewVacanciesHandler(deps),
		submissionHandler: NewSubmissionHandler(deps, cookies),
		sessionHandler:    NewSessionHandler(deps, cookies),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/vacancies", MetricsMiddleware(s.vacanciesHandler.HandleGetVacancies, "vacancies"))
	mux.HandleFunc("/api/submissions", MetricsMiddleware(s.submissionHandler.HandlePostSubmission, "submissions"))
	mux.HandleFunc("/api/status", MetricsMiddleware(s.sessionHandler.HandleGetStatus, "status"))
	mux.HandleFunc("/api/session", MetricsMiddleware(s.sessionHandler.HandleDeleteSession, "session"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
