package seedballots

import (
	"context"
	"fmt"

	"github.com/itm-analitica/concurso/internal/domain/types"
	"github.com/itm-analitica/concurso/pkg/logger"
)

// fetchLeaderboard retrieves the current ranking.
func fetchLeaderboard(ctx context.Context, cfg *Config) ([]types.AggregateResult, error) {
	client := newHTTPClient(cfg.Timeout)
	var results []types.AggregateResult
	if err := client.getJSON(ctx, cfg.BaseURL+"/leaderboard", &results); err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	return results, nil
}

// verifyLeaderboard checks ordering and determinism: weighted totals must
// be non-increasing, ties must break by team id ascending, and a second
// fetch with no intervening writes must match the first exactly.
func verifyLeaderboard(ctx context.Context, cfg *Config) error {
	first, err := fetchLeaderboard(ctx, cfg)
	if err != nil {
		return err
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if prev.WeightedTotal < cur.WeightedTotal {
			return fmt.Errorf("leaderboard out of order at rank %d: %.2f < %.2f",
				cur.Rank, prev.WeightedTotal, cur.WeightedTotal)
		}
		if prev.WeightedTotal == cur.WeightedTotal && prev.TeamID >= cur.TeamID {
			return fmt.Errorf("tie between %s and %s not broken by team id", prev.TeamID, cur.TeamID)
		}
	}

	second, err := fetchLeaderboard(ctx, cfg)
	if err != nil {
		return err
	}
	if len(first) != len(second) {
		return fmt.Errorf("leaderboard changed between fetches: %d vs %d rows", len(first), len(second))
	}
	for i := range first {
		if first[i].TeamID != second[i].TeamID || first[i].WeightedTotal != second[i].WeightedTotal {
			return fmt.Errorf("leaderboard not deterministic at rank %d", i+1)
		}
	}

	logger.Get().Info(ctx, "leaderboard verified",
		logger.Int("teams", len(first)),
	)
	return nil
}
