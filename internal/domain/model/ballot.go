// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/itm-analitica/concurso/internal/domain/rubric"
)

// TeamRecord is a registered team as exposed by the registration worksheet.
// The engine treats it as immutable; only the registration flow mutates it.
type TeamRecord struct {
	ID         string // unique team code, e.g. "EQ-001"
	Name       string // display name
	Docente    string // owning teacher
	RosterSize int    // number of registered students
}

// BallotRequest is a proposed evaluation as received from the presentation
// layer. It is transient and never persisted directly.
type BallotRequest struct {
	Role       rubric.Role
	VoterEmail string
	TeamID     string
	Scores     map[string]int // criterion name -> value
}

// AcceptanceToken is a validated, normalized BallotRequest. It is the only
// input the scoring step accepts, so callers cannot skip validation by
// accident. Criteria follow rubric order.
type AcceptanceToken struct {
	Role       rubric.Role
	VoterEmail string // trimmed, lowercased
	TeamID     string // trimmed
	Criteria   []string
	Scores     []int // aligned with Criteria
}

// Ballot is one voter's completed evaluation of one team. Ballots are
// append-only: created exactly once, never mutated or deleted.
type Ballot struct {
	CastAt     time.Time
	Role       rubric.Role
	VoterEmail string
	TeamID     string
	Total      int
	Criteria   []string // rubric order for Role
	Scores     []int    // aligned with Criteria
}

// SamePair reports whether b and other were cast by the same voter for the
// same team. At most one ballot per pair may exist in the repository.
func (b Ballot) SamePair(voterEmail, teamID string) bool {
	return b.VoterEmail == voterEmail && b.TeamID == teamID
}
