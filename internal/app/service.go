// Package service provides the core business service that implements
// the dependencies required by the HTTP API: ballot submission
// (validate -> score -> append), the weighted leaderboard, and the
// registration summaries.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itm-analitica/concurso/internal/adapters/ballots"
	"github.com/itm-analitica/concurso/internal/adapters/directory"
	"github.com/itm-analitica/concurso/internal/adapters/jury"
	"github.com/itm-analitica/concurso/internal/adapters/tabular"
	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/ranking"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
	"github.com/itm-analitica/concurso/internal/domain/scoring"
	"github.com/itm-analitica/concurso/internal/domain/types"
	"github.com/itm-analitica/concurso/internal/domain/voting"
	"github.com/itm-analitica/concurso/pkg/logger"
	"github.com/itm-analitica/concurso/pkg/metrics"
)

// Default per-role weights applied when configuration supplies none. They
// need not sum to 1; the leaderboard is comparative, not normalized.
var defaultWeights = map[rubric.Role]float64{
	rubric.RoleJudge:    0.7,
	rubric.RoleAttendee: 0.3,
}

// Service wires the adapters, validator, scorer, and aggregator together.
// It holds no ballot state of its own: every request reads current truth
// from the tabular store.
type Service struct {
	mu sync.RWMutex

	store                 tabular.Client
	registrationWorksheet string
	juryWorksheet         string
	ballotWorksheet       string
	weights               map[rubric.Role]float64
	now                   func() time.Time

	directory  *directory.Directory
	jury       *jury.Roster
	repository *ballots.Repository
	validator  *voting.Validator
	aggregator *ranking.Aggregator

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the tabular store client backing all three worksheets.
func WithStore(client tabular.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.store = client
		}
	}
}

// WithWorksheets overrides the worksheet names for registrations, jury, and
// ballots. Empty names keep the defaults.
func WithWorksheets(registrations, juryRoster, ballotSheet string) Option {
	return func(s *Service) {
		if registrations != "" {
			s.registrationWorksheet = registrations
		}
		if juryRoster != "" {
			s.juryWorksheet = juryRoster
		}
		if ballotSheet != "" {
			s.ballotWorksheet = ballotSheet
		}
	}
}

// WithRoleWeights sets the per-role leaderboard weights.
func WithRoleWeights(weights map[rubric.Role]float64) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.weights = weights
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the ballot timestamp source. Tests use it for
// deterministic CastAt values.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		registrationWorksheet: tabular.WorksheetRegistrations,
		juryWorksheet:         tabular.WorksheetJury,
		ballotWorksheet:       tabular.WorksheetBallots,
		weights:               defaultWeights,
		now:                   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the adapters over the configured store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = tabular.NewMemoryClient()
		s.logger.Warn(ctx, "no tabular store configured; using empty in-memory store")
	}

	s.directory = directory.New(s.store, directory.WithWorksheet(s.registrationWorksheet))
	s.jury = jury.New(s.store, jury.WithWorksheet(s.juryWorksheet))
	s.repository = ballots.New(s.store,
		ballots.WithWorksheet(s.ballotWorksheet),
		ballots.WithLogger(s.logger),
	)
	s.validator = voting.NewValidator(s.directory, s.jury, s.repository)
	s.aggregator = ranking.New(s.repository)

	s.started = true
	s.logger.Info(ctx, "voting service started",
		logger.String("registrations", s.registrationWorksheet),
		logger.String("jury", s.juryWorksheet),
		logger.String("ballots", s.ballotWorksheet),
	)
	return nil
}

// Stop releases the tabular store if it owns a handle.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "voting service stopped")
}

// SubmitBallot validates, scores, and appends one ballot. On success the
// returned ballot is already persisted.
//
// The duplicate check runs twice: once inside Validate and once immediately
// before the append. The second pass narrows the window in which two
// overlapping submissions for the same (voter, team) pair both slip
// through, but the store has no conditional write, so the pair invariant
// holds only for sequential submissions.
func (s *Service) SubmitBallot(ctx context.Context, req model.BallotRequest) (model.Ballot, error) {
	token, err := s.validator.Validate(ctx, req)
	if err != nil {
		metrics.RecordBallotRejected(rejectionReason(err))
		return model.Ballot{}, err
	}

	total, err := scoring.ScoreToken(token.Criteria, token.Scores)
	if err != nil {
		metrics.RecordBallotRejected("validation")
		return model.Ballot{}, err
	}

	dup, err := voting.IsDuplicate(ctx, s.repository, token.VoterEmail, token.TeamID)
	if err != nil {
		metrics.RecordBallotRejected("unavailable")
		return model.Ballot{}, err
	}
	if dup {
		metrics.RecordBallotRejected("duplicate")
		return model.Ballot{}, voting.ErrDuplicate
	}

	ballot := model.Ballot{
		CastAt:     s.now().UTC(),
		Role:       token.Role,
		VoterEmail: token.VoterEmail,
		TeamID:     token.TeamID,
		Total:      total,
		Criteria:   token.Criteria,
		Scores:     token.Scores,
	}
	if err := s.repository.Append(ctx, ballot); err != nil {
		metrics.RecordBallotRejected("unavailable")
		return model.Ballot{}, err
	}

	metrics.RecordBallotAccepted()
	s.logger.Info(ctx, "ballot accepted",
		logger.String("team", ballot.TeamID),
		logger.String("role", string(ballot.Role)),
		logger.Int("total", ballot.Total),
	)
	return ballot, nil
}

// Leaderboard recomputes the ranked results from all stored ballots and
// enriches them with team names from the directory.
func (s *Service) Leaderboard(ctx context.Context) ([]types.AggregateResult, error) {
	results, err := s.aggregator.RankTeams(ctx, s.weights)
	if err != nil {
		return nil, err
	}
	teams, err := s.directory.Teams(ctx)
	if err != nil {
		// Names are decoration; the ranking itself is already computed.
		s.logger.Warn(ctx, "leaderboard served without team names", logger.Error(err))
		return results, nil
	}
	metrics.UpdateTotalTeams(len(teams))
	for i := range results {
		if rec, ok := teams[results[i].TeamID]; ok {
			results[i].TeamName = rec.Name
		}
	}
	return results, nil
}

// Team looks up one registered team; nil means it does not exist.
func (s *Service) Team(ctx context.Context, teamID string) (*model.TeamRecord, error) {
	return s.directory.LookupTeam(ctx, teamID)
}

// RegistrationSummary returns the per-docente dashboard aggregates.
func (s *Service) RegistrationSummary(ctx context.Context) (types.RegistrationSummary, error) {
	return s.directory.Summary(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if !s.started {
		return stats
	}

	stats["skippedRows"] = s.repository.SkippedRows()
	weights := make(map[string]float64, len(s.weights))
	for role, w := range s.weights {
		weights[string(role)] = w
	}
	stats["roleWeights"] = weights

	ctx := context.Background()
	if all, err := s.repository.List(ctx); err == nil {
		stats["totalBallots"] = len(all)
	}
	if count, err := s.directory.TeamCount(ctx); err == nil {
		stats["totalTeams"] = count
		metrics.UpdateTotalTeams(count)
	}
	return stats
}

// rejectionReason maps an error kind to its metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, voting.ErrValidation):
		return "validation"
	case errors.Is(err, voting.ErrNotFound):
		return "not_found"
	case errors.Is(err, voting.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, voting.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, tabular.ErrUnavailable):
		return "unavailable"
	default:
		return "unknown"
	}
}
