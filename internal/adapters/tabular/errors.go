package tabular

import "errors"

// Sentinel kinds for tabular store errors.
var (
	// ErrUnavailable indicates the backing store could not be reached or
	// answered with a failure. It is surfaced to callers, never retried here.
	ErrUnavailable = errors.New("tabular store unavailable")
)
