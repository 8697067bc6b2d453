// Package types contains common read shapes used across the application
package types

// AggregateResult is one leaderboard row for a team. It is always a view,
// recomputed from the full ballot set, never persisted.
type AggregateResult struct {
	Rank          int                           `json:"rank"`
	TeamID        string                        `json:"team_id"`
	TeamName      string                        `json:"team_name,omitempty"`
	WeightedTotal float64                       `json:"weighted_total"`
	BallotCount   int                           `json:"ballot_count"`
	CriterionMean map[string]map[string]float64 `json:"criterion_mean"` // role -> criterion -> mean
}

// Team mirrors the registration metadata exposed over the API.
type Team struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Docente    string `json:"docente"`
	RosterSize int    `json:"roster_size"`
}

// DocenteSummary aggregates registrations for one docente, matching the
// dashboard view of the registration worksheet.
type DocenteSummary struct {
	Docente   string `json:"docente"`
	Students  int    `json:"students"`
	TeamCount int    `json:"team_count"`
}

// RegistrationSummary is the dashboard payload for the whole contest.
type RegistrationSummary struct {
	TotalStudents int              `json:"total_students"`
	TotalTeams    int              `json:"total_teams"`
	PerDocente    []DocenteSummary `json:"per_docente"`
}
