// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// SummaryHandler serves the registration dashboard aggregates.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summary, err := h.deps.RegistrationSummary(r.Context())
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
