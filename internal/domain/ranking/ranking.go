// Package ranking aggregates the full ballot set into a weighted team
// leaderboard. Every call is a full recomputation: the ballot worksheet is
// the only source of truth and stays small enough (hundreds to low
// thousands of rows) that rebuilding is cheaper than keeping caches honest.
package ranking

import (
	"context"
	"sort"

	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
	"github.com/itm-analitica/concurso/internal/domain/types"
	"github.com/itm-analitica/concurso/pkg/metrics"
)

// Source reads the stored ballots the aggregation runs over.
type Source interface {
	List(ctx context.Context) ([]model.Ballot, error)
}

// Aggregator produces ranked results from stored ballots.
type Aggregator struct {
	ballots Source
}

// New creates an Aggregator over a ballot source.
func New(ballots Source) *Aggregator {
	return &Aggregator{ballots: ballots}
}

// RankTeams groups all ballots by team and ranks teams by weighted total,
// descending. weights maps each role to its multiplier; the weights need
// not sum to 1, and a role absent from the map contributes 0. Ties break by
// team id ascending so repeated calls over the same ballots produce
// identical output.
//
// Per-criterion means are reported separately per role: judge and attendee
// rubrics score different criteria and must never be averaged together.
func (a *Aggregator) RankTeams(ctx context.Context, weights map[rubric.Role]float64) ([]types.AggregateResult, error) {
	all, err := a.ballots.List(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordLeaderboardRebuild()

	type criterionAcc struct {
		sum   int
		count int
	}
	type teamAcc struct {
		weighted float64
		ballots  int
		criteria map[rubric.Role]map[string]*criterionAcc
	}

	teams := make(map[string]*teamAcc)
	for _, b := range all {
		acc := teams[b.TeamID]
		if acc == nil {
			acc = &teamAcc{criteria: make(map[rubric.Role]map[string]*criterionAcc)}
			teams[b.TeamID] = acc
		}
		acc.weighted += weights[b.Role] * float64(b.Total)
		acc.ballots++

		byName := acc.criteria[b.Role]
		if byName == nil {
			byName = make(map[string]*criterionAcc)
			acc.criteria[b.Role] = byName
		}
		for i, name := range b.Criteria {
			c := byName[name]
			if c == nil {
				c = &criterionAcc{}
				byName[name] = c
			}
			c.sum += b.Scores[i]
			c.count++
		}
	}

	results := make([]types.AggregateResult, 0, len(teams))
	for teamID, acc := range teams {
		means := make(map[string]map[string]float64, len(acc.criteria))
		for role, byName := range acc.criteria {
			roleMeans := make(map[string]float64, len(byName))
			for name, c := range byName {
				roleMeans[name] = float64(c.sum) / float64(c.count)
			}
			means[string(role)] = roleMeans
		}
		results = append(results, types.AggregateResult{
			TeamID:        teamID,
			WeightedTotal: acc.weighted,
			BallotCount:   acc.ballots,
			CriterionMean: means,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].WeightedTotal != results[j].WeightedTotal {
			return results[i].WeightedTotal > results[j].WeightedTotal
		}
		return results[i].TeamID < results[j].TeamID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}
