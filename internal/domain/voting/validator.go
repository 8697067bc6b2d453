// Package voting decides whether a proposed ballot may be accepted. The
// validator is stateless between calls; every check reads current state from
// its collaborators so nothing ambient survives a request.
package voting

import (
	"context"
	"fmt"
	"strings"

	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
)

// TeamDirectory is the registration collaborator: nil record means the team
// does not exist.
type TeamDirectory interface {
	LookupTeam(ctx context.Context, teamID string) (*model.TeamRecord, error)
}

// JuryRoster is the authorization collaborator for the judge role.
type JuryRoster interface {
	IsAuthorizedJudge(ctx context.Context, email string) (bool, error)
}

// BallotSource reads previously cast ballots for the duplicate check.
type BallotSource interface {
	List(ctx context.Context) ([]model.Ballot, error)
}

// Validator orchestrates the acceptance decision. It never writes: appending
// an accepted ballot is the caller's job.
type Validator struct {
	directory TeamDirectory
	jury      JuryRoster
	ballots   BallotSource
}

// NewValidator creates a Validator over the three collaborators.
func NewValidator(directory TeamDirectory, jury JuryRoster, ballots BallotSource) *Validator {
	return &Validator{
		directory: directory,
		jury:      jury,
		ballots:   ballots,
	}
}

// Validate runs the canonical check order, short-circuiting on the first
// failure: shape, team existence, authorization (judge only), duplicate.
// On success it returns a normalized token the scoring step consumes.
//
// The duplicate check reads a snapshot; the append happens later as a
// separate call, so two overlapping submissions for the same (voter, team)
// pair can both pass here. Callers narrow the window by re-checking right
// before appending (see app.Service.SubmitBallot), but the backing store
// offers no conditional write, so full exclusion is not possible.
func (v *Validator) Validate(ctx context.Context, req model.BallotRequest) (model.AcceptanceToken, error) {
	token, err := normalize(req)
	if err != nil {
		return model.AcceptanceToken{}, err
	}

	rec, err := v.directory.LookupTeam(ctx, token.TeamID)
	if err != nil {
		return model.AcceptanceToken{}, err
	}
	if rec == nil {
		return model.AcceptanceToken{}, fmt.Errorf("%w: %q", ErrNotFound, token.TeamID)
	}

	if token.Role == rubric.RoleJudge {
		ok, err := v.jury.IsAuthorizedJudge(ctx, token.VoterEmail)
		if err != nil {
			return model.AcceptanceToken{}, err
		}
		if !ok {
			return model.AcceptanceToken{}, fmt.Errorf("%w: %q", ErrUnauthorized, token.VoterEmail)
		}
	}

	dup, err := IsDuplicate(ctx, v.ballots, token.VoterEmail, token.TeamID)
	if err != nil {
		return model.AcceptanceToken{}, err
	}
	if dup {
		return model.AcceptanceToken{}, fmt.Errorf("%w: %s already voted for %s",
			ErrDuplicate, token.VoterEmail, token.TeamID)
	}

	return token, nil
}

// IsDuplicate reports whether a ballot for (voterEmail, teamID) already
// exists. Inputs must already be normalized. Exported so the caller can
// re-check immediately before the append.
func IsDuplicate(ctx context.Context, src BallotSource, voterEmail, teamID string) (bool, error) {
	existing, err := src.List(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.SamePair(voterEmail, teamID) {
			return true, nil
		}
	}
	return false, nil
}

// normalize performs the shape check and builds the token: trimmed team id,
// trimmed+lowercased email, criteria in rubric order, every score in range.
func normalize(req model.BallotRequest) (model.AcceptanceToken, error) {
	email := strings.ToLower(strings.TrimSpace(req.VoterEmail))
	if email == "" {
		return model.AcceptanceToken{}, fmt.Errorf("%w: empty voter email", ErrValidation)
	}
	teamID := strings.TrimSpace(req.TeamID)
	if teamID == "" {
		return model.AcceptanceToken{}, fmt.Errorf("%w: empty team id", ErrValidation)
	}

	criteria, err := rubric.CriteriaFor(req.Role)
	if err != nil {
		return model.AcceptanceToken{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(req.Scores) != len(criteria) {
		return model.AcceptanceToken{}, fmt.Errorf("%w: rubric for %s needs %d criteria, got %d",
			ErrValidation, req.Role, len(criteria), len(req.Scores))
	}

	min, max := rubric.ScoreRange()
	scores := make([]int, len(criteria))
	for i, name := range criteria {
		v, ok := req.Scores[name]
		if !ok {
			return model.AcceptanceToken{}, fmt.Errorf("%w: missing criterion %q", ErrValidation, name)
		}
		if !rubric.InRange(v) {
			return model.AcceptanceToken{}, fmt.Errorf("%w: criterion %q = %d, want [%d,%d]",
				ErrValidation, name, v, min, max)
		}
		scores[i] = v
	}

	return model.AcceptanceToken{
		Role:       req.Role,
		VoterEmail: email,
		TeamID:     teamID,
		Criteria:   criteria,
		Scores:     scores,
	}, nil
}
