// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and environment.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorePath is the SQLite file backing the tabular store. Empty means
	// an in-memory store (useful for demos and tests only: nothing persists).
	StorePath string `koanf:"store_path"`

	// Worksheet names inside the tabular store.
	RegistrationsWorksheet string `koanf:"registrations_worksheet"`
	JuryWorksheet          string `koanf:"jury_worksheet"`
	BallotsWorksheet       string `koanf:"ballots_worksheet"`

	// RoleWeights maps role names (docente, estudiante) to their
	// leaderboard multipliers. They need not sum to 1.
	RoleWeights map[string]float64 `koanf:"role_weights"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		StorePath:              "concurso.db",
		RegistrationsWorksheet: "inscripciones",
		JuryWorksheet:          "jurados",
		BallotsWorksheet:       "votaciones",
		RoleWeights: map[string]float64{
			"docente":    0.7,
			"estudiante": 0.3,
		},
		MaxLeaderboardLimit: 100,
	}
}
