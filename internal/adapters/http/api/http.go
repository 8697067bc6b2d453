// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/itm-analitica/concurso/internal/adapters/tabular"
	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/types"
	"github.com/itm-analitica/concurso/internal/domain/voting"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitBallot validates, scores, and persists one ballot.
	SubmitBallot(ctx context.Context, req model.BallotRequest) (model.Ballot, error)

	// Read operations expose leaderboard and registration data.
	Leaderboard(ctx context.Context) ([]types.AggregateResult, error)
	Team(ctx context.Context, teamID string) (*model.TeamRecord, error)
	RegistrationSummary(ctx context.Context) (types.RegistrationSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	ballotsHandler     *BallotsHandler
	leaderboardHandler *LeaderboardHandler
	teamsHandler       *TeamsHandler
	summaryHandler     *SummaryHandler
	rubricHandler      *RubricHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		ballotsHandler:     NewBallotsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		teamsHandler:       NewTeamsHandler(deps),
		summaryHandler:     NewSummaryHandler(deps),
		rubricHandler:      NewRubricHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/ballots", MetricsMiddleware(s.ballotsHandler.HandlePostBallot, "ballots"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleGetTeam, "teams"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/rubric", MetricsMiddleware(s.rubricHandler.HandleGetRubric, "rubric"))
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

// writeRejection maps an error kind from the engine to its HTTP shape. End
// users only ever see one of these five codes, never a raw adapter error.
func writeRejection(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voting.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "invalid_ballot", err)
	case errors.Is(err, voting.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown_team", err)
	case errors.Is(err, voting.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "not_authorized", err)
	case errors.Is(err, voting.ErrDuplicate):
		writeError(w, http.StatusConflict, "already_voted", err)
	case errors.Is(err, tabular.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", errors.New("backing store unavailable, retry later"))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", errors.New("internal error"))
	}
}
