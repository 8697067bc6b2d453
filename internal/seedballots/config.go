// Package seedballots drives the running service over HTTP: it generates
// realistic attendee ballots for registered teams, submits them
// concurrently, and verifies the resulting leaderboard is deterministic.
package seedballots

import (
	"time"
)

// Config controls one seeding run.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:9080.
	BaseURL string

	// TeamIDs to vote for. Teams must already be registered.
	TeamIDs []string

	// BallotsPerTeam is how many attendee ballots to cast per team.
	BallotsPerTeam int

	// Workers is the number of concurrent submitters.
	Workers int

	// Timeout per HTTP request.
	Timeout time.Duration

	// Verbose enables debug logging.
	Verbose bool
}

// Stats accumulates the outcome of a run.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Generated int
	Accepted  int64
	Rejected  int64
	Failed    int64
}
