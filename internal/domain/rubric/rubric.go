// Package rubric holds the static evaluation rubrics: which criteria each
// voter role scores and the allowed range for every criterion.
package rubric

import (
	"fmt"
	"strings"
)

// Role identifies the kind of voter casting a ballot.
type Role string

// Known voter roles.
const (
	// RoleJudge is a docente with a seat on the jury.
	RoleJudge Role = "docente"
	// RoleAttendee is an estudiante attending the contest.
	RoleAttendee Role = "estudiante"
)

// Score range shared by every criterion of every rubric.
const (
	minScore = 1
	maxScore = 5
)

// Criteria are ordered; the order is the column order of persisted ballots.
var (
	judgeCriteria    = []string{"rigor", "viabilidad", "innovacion"}
	attendeeCriteria = []string{"claridad", "impacto", "presentacion"}
)

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleJudge, RoleAttendee}
}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleJudge:
		return RoleJudge, nil
	case RoleAttendee:
		return RoleAttendee, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// CriteriaFor returns the ordered criterion names for a role. The returned
// slice is a copy; callers may not mutate the catalog.
func CriteriaFor(role Role) ([]string, error) {
	switch role {
	case RoleJudge:
		return append([]string(nil), judgeCriteria...), nil
	case RoleAttendee:
		return append([]string(nil), attendeeCriteria...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// CriteriaCount is the number of criteria every rubric carries. Persisted
// ballot rows rely on this being the same for both roles.
func CriteriaCount() int {
	return len(judgeCriteria)
}

// ScoreRange returns the inclusive bounds every criterion score must honor.
func ScoreRange() (min, max int) {
	return minScore, maxScore
}

// InRange reports whether v is a legal criterion score.
func InRange(v int) bool {
	return v >= minScore && v <= maxScore
}
