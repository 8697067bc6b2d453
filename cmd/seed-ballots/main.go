package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/itm-analitica/concurso/internal/seedballots"
	"github.com/itm-analitica/concurso/pkg/logger"
)

// Default configuration constants.
const (
	defaultBallotsPerTeam = 25
	defaultTimeout        = 30 * time.Second
)

func main() {
	var (
		baseURL        = flag.String("url", "http://localhost:9080", "Base URL of the service")
		teams          = flag.String("teams", "", "Comma-separated team ids to vote for (required)")
		ballotsPerTeam = flag.Int("ballots", defaultBallotsPerTeam, "Attendee ballots to cast per team")
		workers        = flag.Int("workers", runtime.NumCPU(), "Number of concurrent submitters")
		timeout        = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	var teamIDs []string
	for _, id := range strings.Split(*teams, ",") {
		if id = strings.TrimSpace(id); id != "" {
			teamIDs = append(teamIDs, id)
		}
	}

	cfg := &seedballots.Config{
		BaseURL:        strings.TrimRight(*baseURL, "/"),
		TeamIDs:        teamIDs,
		BallotsPerTeam: *ballotsPerTeam,
		Workers:        *workers,
		Timeout:        *timeout,
		Verbose:        *verbose,
	}

	ctx := context.Background()
	if err := seedballots.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
}
