package seedballots

import (
	"context"
	"fmt"
	"time"

	"github.com/itm-analitica/concurso/pkg/logger"
)

// Run executes a complete seeding pass: generate, submit, verify.
func Run(ctx context.Context, cfg *Config) error {
	if len(cfg.TeamIDs) == 0 {
		return fmt.Errorf("no team ids given")
	}
	if cfg.BallotsPerTeam < 1 {
		return fmt.Errorf("ballots per team must be at least 1")
	}

	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()
	log.Info(ctx, "starting ballot seeding",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("teams", len(cfg.TeamIDs)),
		logger.Int("perTeam", cfg.BallotsPerTeam),
		logger.Int("workers", cfg.Workers),
	)

	ballots, err := generateBallots(ctx, cfg, stats)
	if err != nil {
		return fmt.Errorf("ballot generation failed: %w", err)
	}
	if err := submitBallots(ctx, cfg, ballots, stats); err != nil {
		return fmt.Errorf("ballot submission failed: %w", err)
	}
	if err := verifyLeaderboard(ctx, cfg); err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "seeding finished",
		logger.Int("generated", stats.Generated),
		logger.Int("accepted", int(stats.Accepted)),
		logger.Int("rejected", int(stats.Rejected)),
		logger.Int("failed", int(stats.Failed)),
		logger.String("duration", stats.Duration.String()),
	)
	return nil
}
