package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontendfusion/signup/internal/domain/signup"
)

// maxBodyBytes bounds a JSON submission body.
const maxBodyBytes = 64 << 10

// SubmissionHandler accepts signup submissions as JSON.
type SubmissionHandler struct {
	deps    Dependencies
	cookies Cookies
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(deps Dependencies, cookies Cookies) *SubmissionHandler {
	return &SubmissionHandler{deps: deps, cookies: cookies}
}

// submissionRequest mirrors the OpenAPI schema for POST /api/submissions.
type submissionRequest struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

func (s submissionRequest) formData() signup.FormData {
	return signup.FormData{
		Name:        s.Name,
		LastName:    s.LastName,
		Email:       s.Email,
		Position:    s.Position,
		Description: s.Description,
	}
}

type submissionResponse struct {
	SessionID string             `json:"session_id"`
	Status    *string            `json:"status"`
	Message   *string            `json:"message"`
	Errors    signup.FieldErrors `json:"errors,omitempty"`
}

func newSubmissionResponse(id string, r signup.Result, errs signup.FieldErrors) submissionResponse {
	resp := submissionResponse{SessionID: id, Errors: errs}
	if r.Visible() {
		status := r.Status.String()
		msg := r.Message
		resp.Status = &status
		resp.Message = &msg
	}
	return resp
}

// HandlePostSubmission handles POST /api/submissions requests.
func (h *SubmissionHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	var req submissionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	id, out, err := h.deps.Submit(r.Context(), h.cookies.SessionID(r), req.formData())
	if id != "" {
		h.cookies.Set(w, id)
	}
	switch {
	case errors.Is(err, signup.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, "in_flight", WrapKind(op, ErrInFlight, err))
	case errors.Is(err, signup.ErrFormClosed):
		writeError(w, http.StatusConflict, "session_closed", WrapKind(op, ErrSessionClosed, err))
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case !out.Valid():
		writeJSON(w, http.StatusUnprocessableEntity, newSubmissionResponse(id, out.Result, out.Errors))
	default:
		writeJSON(w, http.StatusOK, newSubmissionResponse(id, out.Result, nil))
	}
}
