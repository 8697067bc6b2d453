// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/itm-analitica/concurso/internal/domain/rubric"
)

// RubricHandler exposes the static rubric catalog so voting forms can
// render the right criteria per role.
type RubricHandler struct{}

// NewRubricHandler creates a new rubric handler.
func NewRubricHandler() *RubricHandler {
	return &RubricHandler{}
}

type rubricResponse struct {
	Role     string   `json:"role"`
	Criteria []string `json:"criteria"`
	MinScore int      `json:"min_score"`
	MaxScore int      `json:"max_score"`
}

// HandleGetRubric handles GET /rubric?role=docente|estudiante requests.
func (h *RubricHandler) HandleGetRubric(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rubric"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	role, err := rubric.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_role", WrapKind(op, ErrBadRequest, err))
		return
	}
	criteria, err := rubric.CriteriaFor(role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	min, max := rubric.ScoreRange()
	writeJSON(w, http.StatusOK, rubricResponse{
		Role:     string(role),
		Criteria: criteria,
		MinScore: min,
		MaxScore: max,
	})
}
