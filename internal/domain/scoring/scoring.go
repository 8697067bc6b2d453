// Package scoring computes rubric-bound totals for a single ballot.
package scoring

import (
	"fmt"

	"github.com/itm-analitica/concurso/internal/domain/rubric"
)

// Result contains the computed score for one ballot.
type Result struct {
	Role     rubric.Role
	Criteria []string // rubric order
	Scores   []int    // aligned with Criteria
	Total    int      // arithmetic sum of Scores
}

// Score computes the total for a role's criterion values. It re-checks the
// criterion set and range even though the validator already did, so it stays
// safe to call standalone. No role weighting happens here; weights apply
// across ballots during aggregation.
func Score(role rubric.Role, values map[string]int) (Result, error) {
	criteria, err := rubric.CriteriaFor(role)
	if err != nil {
		return Result{}, err
	}
	if len(values) != len(criteria) {
		return Result{}, fmt.Errorf("%w: got %d criteria, rubric for %s has %d",
			ErrOutOfRubric, len(values), role, len(criteria))
	}

	min, max := rubric.ScoreRange()
	scores := make([]int, len(criteria))
	total := 0
	for i, name := range criteria {
		v, ok := values[name]
		if !ok {
			return Result{}, fmt.Errorf("%w: missing criterion %q", ErrOutOfRubric, name)
		}
		if !rubric.InRange(v) {
			return Result{}, fmt.Errorf("%w: criterion %q = %d, want [%d,%d]",
				ErrOutOfRange, name, v, min, max)
		}
		scores[i] = v
		total += v
	}

	return Result{
		Role:     role,
		Criteria: criteria,
		Scores:   scores,
		Total:    total,
	}, nil
}

// ScoreToken computes the total for an already validated token. The token's
// criteria are trusted to be in rubric order; scores are still range-checked.
func ScoreToken(criteria []string, scores []int) (int, error) {
	if len(criteria) != len(scores) {
		return 0, fmt.Errorf("%w: %d criteria, %d scores", ErrOutOfRubric, len(criteria), len(scores))
	}
	min, max := rubric.ScoreRange()
	total := 0
	for i, v := range scores {
		if !rubric.InRange(v) {
			return 0, fmt.Errorf("%w: criterion %q = %d, want [%d,%d]",
				ErrOutOfRange, criteria[i], v, min, max)
		}
		total += v
	}
	return total, nil
}
