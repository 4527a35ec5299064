// Package service provides the core business service that implements
// the dependencies required by the HTTP adapters.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/frontendfusion/signup/internal/config"
	"github.com/frontendfusion/signup/internal/domain/session"
	"github.com/frontendfusion/signup/internal/domain/signup"
	"github.com/frontendfusion/signup/pkg/logger"
	"github.com/frontendfusion/signup/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoCreator  = errors.New("no user creator configured")
)

// Service owns the signup schema, the live form sessions and the users API client.
type Service struct {
	mu sync.RWMutex

	// Core components
	creator  signup.UserCreator
	schema   *signup.Schema
	sessions session.Registry

	// Configuration
	vacancies    []string
	sessionLimit int

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithUserCreator sets the remote create-user operation.
func WithUserCreator(c signup.UserCreator) Option {
	return func(s *Service) {
		if c != nil {
			s.creator = c
		}
	}
}

// WithVacancies sets the positions a candidate may pick.
func WithVacancies(vacancies []string) Option {
	return func(s *Service) {
		if len(vacancies) > 0 {
			s.vacancies = append([]string(nil), vacancies...)
		}
	}
}

// WithSessionLimit caps the number of live form sessions (<= 0 is unbounded).
func WithSessionLimit(limit int) Option {
	return func(s *Service) {
		s.sessionLimit = limit
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		vacancies:    append([]string(nil), config.DefaultVacancies...),
		sessionLimit: 10_000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the schema and the session registry.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.creator == nil {
		return ErrNoCreator
	}

	schema, err := signup.NewSchema(s.vacancies)
	if err != nil {
		return err
	}
	s.schema = schema

	formLogger := s.logger.Named("form")
	s.sessions = session.NewInMemoryRegistry(func() *signup.Form {
		return signup.NewForm(schema, s.creator, signup.WithFormLogger(formLogger))
	}, session.WithMaxSize(s.sessionLimit))

	s.started = true
	s.logger.Info(ctx, "signup service started",
		logger.Int("vacancies", len(schema.Vacancies())),
		logger.Int("sessionLimit", s.sessionLimit),
	)
	return nil
}

// Stop closes every live form, cancelling pending users API calls.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping signup service...")
	s.sessions.Close()
	s.started = false
	s.logger.Info(context.Background(), "signup service stopped")
}

func (s *Service) registry() (session.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.sessions, nil
}

// NewSession starts a fresh form instance, the equivalent of a page load.
func (s *Service) NewSession(ctx context.Context) (string, *signup.Form, error) {
	reg, err := s.registry()
	if err != nil {
		return "", nil, err
	}
	id, form := reg.Create(ctx)
	s.logger.Debug(ctx, "session created", logger.String("session", id))
	return id, form, nil
}

// Session resolves id to its form, starting a new session when id is unknown
// or was evicted. The returned id is the one to hand back to the client.
func (s *Service) Session(ctx context.Context, id string) (string, *signup.Form, error) {
	reg, err := s.registry()
	if err != nil {
		return "", nil, err
	}
	if id != "" {
		if form, ok := reg.Get(ctx, id); ok {
			return id, form, nil
		}
	}
	return s.NewSession(ctx)
}

// Submit runs one submit attempt on the session's form.
func (s *Service) Submit(ctx context.Context, id string, data signup.FormData) (string, signup.Outcome, error) {
	id, form, err := s.Session(ctx, id)
	if err != nil {
		return "", signup.Outcome{}, err
	}
	out, err := form.Submit(ctx, data)
	return id, out, err
}

// EndSession closes the session's form. Unknown ids are ignored.
func (s *Service) EndSession(ctx context.Context, id string) {
	reg, err := s.registry()
	if err != nil {
		return
	}
	reg.Remove(ctx, id)
}

// Vacancies returns the positions offered on the form.
func (s *Service) Vacancies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.schema != nil {
		return s.schema.Vacancies()
	}
	return append([]string(nil), s.vacancies...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":      s.started,
		"sessionLimit": s.sessionLimit,
		"vacancies":    len(s.vacancies),
	}

	if s.schema != nil {
		stats["vacancies"] = len(s.schema.Vacancies())
	}

	if s.started {
		active := s.sessions.Size()
		stats["activeSessions"] = active
		metrics.UpdateActiveSessions(active)
	}

	return stats
}
