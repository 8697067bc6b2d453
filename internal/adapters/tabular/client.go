// Package tabular abstracts the external append-only tabular store that
// backs registrations, the jury roster, and ballots. Rows are schemaless
// cell slices keyed only by worksheet name; the store supports reading all
// rows of a worksheet and appending new ones, nothing else. There are no
// transactions and no conditional writes.
package tabular

import "context"

// Well-known worksheet names. These mirror the tabs of the contest
// spreadsheet and can be overridden through configuration.
const (
	WorksheetRegistrations = "inscripciones"
	WorksheetJury          = "jurados"
	WorksheetBallots       = "votaciones"
)

// Client provides read/append access to one tabular store.
type Client interface {
	// Rows returns every row of a worksheet in insertion order. An unknown
	// worksheet yields an empty slice, not an error.
	Rows(ctx context.Context, worksheet string) ([][]string, error)

	// Append adds one row at the end of a worksheet. Rows are never mutated
	// or deleted afterward.
	Append(ctx context.Context, worksheet string, row []string) error
}
