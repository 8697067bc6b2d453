package voting

import "errors"

// Sentinel kinds for ballot rejection. The presentation layer maps each kind
// to a user-facing message; no other error ever reaches a voter.
var (
	// ErrValidation is a malformed request: missing field, unknown role,
	// out-of-range score, or the wrong criterion set for the role.
	ErrValidation = errors.New("invalid ballot request")
	// ErrNotFound means the team id is not in the directory.
	ErrNotFound = errors.New("team not found")
	// ErrUnauthorized means a judge ballot from an email outside the jury.
	ErrUnauthorized = errors.New("not authorized to vote as judge")
	// ErrDuplicate means this voter already cast a ballot for this team.
	ErrDuplicate = errors.New("duplicate ballot")
)
