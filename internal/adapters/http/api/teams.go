// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/itm-analitica/concurso/internal/domain/types"
)

// TeamsHandler handles team lookups, used by the voting form to validate a
// team code before submitting.
type TeamsHandler struct {
	deps Dependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGetTeam handles GET /teams/{id} requests.
func (h *TeamsHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teamID := strings.TrimPrefix(r.URL.Path, "/teams/")
	if teamID == "" || strings.Contains(teamID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rec, err := h.deps.Team(r.Context(), teamID)
	if err != nil {
		writeRejection(w, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "unknown_team", fmt.Errorf("%s: team %q not registered", op, teamID))
		return
	}
	writeJSON(w, http.StatusOK, types.Team{
		ID:         rec.ID,
		Name:       rec.Name,
		Docente:    rec.Docente,
		RosterSize: rec.RosterSize,
	})
}
