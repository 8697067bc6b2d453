package seedballots

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
	"github.com/itm-analitica/concurso/pkg/logger"
)

// ballot is the wire shape of POST /ballots.
type ballot struct {
	Role       string         `json:"role"`
	VoterEmail string         `json:"voter_email"`
	TeamID     string         `json:"team_id"`
	Scores     map[string]int `json:"scores"`
}

// randomScore returns a score in the rubric range using crypto/rand.
func randomScore() int {
	min, max := rubric.ScoreRange()
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	return min + int(n.Int64())
}

// generateBallots builds one attendee ballot per (voter, team) pair. Every
// voter gets a uuid-suffixed email so no pair ever collides with a previous
// run; only the attendee role is used because judge ballots would be
// rejected for emails outside the jury roster.
func generateBallots(ctx context.Context, cfg *Config, stats *Stats) ([]ballot, error) {
	criteria, err := rubric.CriteriaFor(rubric.RoleAttendee)
	if err != nil {
		return nil, err
	}

	out := make([]ballot, 0, len(cfg.TeamIDs)*cfg.BallotsPerTeam)
	for i := 0; i < cfg.BallotsPerTeam; i++ {
		voter := fmt.Sprintf("seed-%s@estudiantes.itm.edu.co", uuid.New().String())
		for _, teamID := range cfg.TeamIDs {
			scores := make(map[string]int, len(criteria))
			for _, name := range criteria {
				scores[name] = randomScore()
			}
			out = append(out, ballot{
				Role:       string(rubric.RoleAttendee),
				VoterEmail: voter,
				TeamID:     teamID,
				Scores:     scores,
			})
		}
	}
	stats.Generated = len(out)

	logger.Get().Info(ctx, "generated ballots",
		logger.Int("count", len(out)),
		logger.Int("teams", len(cfg.TeamIDs)),
		logger.Int("perTeam", cfg.BallotsPerTeam),
	)
	return out, nil
}
