// Package site serves the server-rendered signup form.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/frontendfusion/signup/internal/adapters/http/api"
	"github.com/frontendfusion/signup/internal/domain/signup"
	"github.com/frontendfusion/signup/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("signup page render failed")
	ErrServe  = errors.New("signup page serve failed")
)

// maxFormBytes bounds a urlencoded submission body.
const maxFormBytes = 64 << 10

// Dependencies required by the form handler.
type Dependencies interface {
	NewSession(ctx context.Context) (string, *signup.Form, error)
	Submit(ctx context.Context, id string, data signup.FormData) (string, signup.Outcome, error)
	Vacancies() []string
}

var templates = template.Must(
	template.New("site").Funcs(template.FuncMap{
		"field": newInputField,
		"lines": lines,
	}).ParseFS(templateFS, "templates/*.html"),
)

// page is the view model of the form.
type page struct {
	Vacancies []string
	Values    signup.FormData
	Errors    signup.FieldErrors
	Result    signup.Result
}

type inputField struct {
	ID    string
	Label string
	Type  string
	Value string
	Error string
}

func newInputField(id, label, typ string, p page) inputField {
	return inputField{
		ID:    id,
		Label: label,
		Type:  typ,
		Value: p.Values.Get(id),
		Error: p.Errors[id],
	}
}

// lines splits a banner message into its visual lines.
func lines(msg string) []string {
	parts := strings.Split(msg, "\n")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Handler renders and accepts the signup form.
type Handler struct {
	deps    Dependencies
	cookies api.Cookies
	logger  logger.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) { h.cookies.Secure = secure }
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates the form handler.
func NewHandler(deps Dependencies, opts ...Option) *Handler {
	h := &Handler{deps: deps}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.Named("site")
	}
	return h
}

// Register attaches the form page and its static assets to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	static := http.StripPrefix("/static/", http.FileServer(FS()))
	mux.HandleFunc("/static/", api.MetricsMiddleware(static.ServeHTTP, "static"))
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleRoot, "form"))
}

// HandleRoot handles GET / (a fresh page load) and POST / (a submit).
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.handleLoad(w, r)
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	id, form, err := h.deps.NewSession(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.cookies.Set(w, id)
	h.render(w, r, http.StatusOK, page{
		Vacancies: h.deps.Vacancies(),
		Result:    form.Result(),
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := signup.FormDataFromValues(r.PostForm.Get)
	id, out, err := h.deps.Submit(r.Context(), h.cookies.SessionID(r), data)

	status := http.StatusOK
	switch {
	case errors.Is(err, signup.ErrSubmitInFlight), errors.Is(err, signup.ErrFormClosed):
		status = http.StatusConflict
	case err != nil:
		h.fail(w, r, err)
		return
	}
	h.cookies.Set(w, id)

	h.render(w, r, status, page{
		Vacancies: h.deps.Vacancies(),
		Values:    data,
		Errors:    out.Errors,
		Result:    out.Result,
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index", p); err != nil {
		h.fail(w, r, errors.Join(ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn(r.Context(), "write page", logger.Error(errors.Join(ErrServe, err)))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "serve signup page", logger.Error(err))
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}
