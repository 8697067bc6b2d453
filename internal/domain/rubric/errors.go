package rubric

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownRole indicates a role outside the static catalog. This is a
	// configuration/programming error, not a runtime condition to recover from.
	ErrUnknownRole = errors.New("unknown role")
)
