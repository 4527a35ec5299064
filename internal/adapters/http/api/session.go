package api

import (
	"net/http"
)

// SessionHandler exposes the banner of the caller's form instance and lets
// the client end it.
type SessionHandler struct {
	deps    Dependencies
	cookies Cookies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies, cookies Cookies) *SessionHandler {
	return &SessionHandler{deps: deps, cookies: cookies}
}

// HandleGetStatus handles GET /api/status requests.
func (h *SessionHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_status"
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	id, form, err := h.deps.Session(r.Context(), h.cookies.SessionID(r))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	h.cookies.Set(w, id)
	writeJSON(w, http.StatusOK, newSubmissionResponse(id, form.Result(), nil))
}

// HandleDeleteSession handles DELETE /api/session requests.
func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_session"
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	if id := h.cookies.SessionID(r); id != "" {
		h.deps.EndSession(r.Context(), id)
	}
	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
