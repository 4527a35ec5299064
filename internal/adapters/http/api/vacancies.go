package api

import (
	"net/http"
)

// VacanciesHandler lists the positions a candidate may apply for.
type VacanciesHandler struct {
	deps Dependencies
}

// NewVacanciesHandler creates a new vacancies handler.
func NewVacanciesHandler(deps Dependencies) *VacanciesHandler {
	return &VacanciesHandler{deps: deps}
}

type vacanciesResponse struct {
	Vacancies []string `json:"vacancies"`
}

// HandleGetVacancies handles GET /api/vacancies requests.
func (h *VacanciesHandler) HandleGetVacancies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, vacanciesResponse{Vacancies: h.deps.Vacancies()})
}
