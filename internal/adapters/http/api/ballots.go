// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
)

// BallotsHandler handles ballot submissions.
type BallotsHandler struct {
	deps Dependencies
}

// NewBallotsHandler creates a new ballots handler.
func NewBallotsHandler(deps Dependencies) *BallotsHandler {
	return &BallotsHandler{deps: deps}
}

// ballotRequest mirrors the JSON shape of POST /ballots.
type ballotRequest struct {
	Role       string         `json:"role"`
	VoterEmail string         `json:"voter_email"`
	TeamID     string         `json:"team_id"`
	Scores     map[string]int `json:"scores"`
}

func (b ballotRequest) validate() error {
	switch {
	case strings.TrimSpace(b.Role) == "":
		return errors.New("missing role")
	case strings.TrimSpace(b.VoterEmail) == "":
		return errors.New("missing voter_email")
	case strings.TrimSpace(b.TeamID) == "":
		return errors.New("missing team_id")
	case len(b.Scores) == 0:
		return errors.New("missing scores")
	}
	return nil
}

// ballotResponse acknowledges an accepted ballot.
type ballotResponse struct {
	Status string    `json:"status"`
	TeamID string    `json:"team_id"`
	Role   string    `json:"role"`
	Total  int       `json:"total"`
	CastAt time.Time `json:"cast_at"`
}

// HandlePostBallot handles POST /ballots requests.
func (h *BallotsHandler) HandlePostBallot(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_ballot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req ballotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Role strings outside the catalog become validation failures inside
	// the engine; parse leniently here to pass the raw value through.
	role, _ := rubric.ParseRole(req.Role)
	if role == "" {
		role = rubric.Role(req.Role)
	}

	ballot, err := h.deps.SubmitBallot(r.Context(), model.BallotRequest{
		Role:       role,
		VoterEmail: req.VoterEmail,
		TeamID:     req.TeamID,
		Scores:     req.Scores,
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ballotResponse{
		Status: "accepted",
		TeamID: ballot.TeamID,
		Role:   string(ballot.Role),
		Total:  ballot.Total,
		CastAt: ballot.CastAt,
	})
}
