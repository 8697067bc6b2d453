package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrOutOfRange  = errors.New("criterion score out of range")
	ErrOutOfRubric = errors.New("criteria do not match rubric")
)
