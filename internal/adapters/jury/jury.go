// Package jury wraps the worksheet listing emails authorized to vote as
// judges (docentes with a jury seat).
package jury

import (
	"context"
	"fmt"
	"strings"

	"github.com/itm-analitica/concurso/internal/adapters/tabular"
)

// colEmail is the authorized-email column of the jury worksheet.
const colEmail = 0

// Roster checks judge authorization against the jury worksheet.
type Roster struct {
	client    tabular.Client
	worksheet string
}

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithWorksheet overrides the jury worksheet name.
func WithWorksheet(name string) Option {
	return func(r *Roster) {
		if name != "" {
			r.worksheet = name
		}
	}
}

// New creates a Roster over a tabular client.
func New(client tabular.Client, opts ...Option) *Roster {
	r := &Roster{
		client:    client,
		worksheet: tabular.WorksheetJury,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsAuthorizedJudge reports whether email belongs to the jury. The input is
// trimmed and lowercased before comparison; anyone absent from the
// worksheet, malformed input included, is not authorized.
func (r *Roster) IsAuthorizedJudge(ctx context.Context, email string) (bool, error) {
	email = Normalize(email)
	if email == "" {
		return false, nil
	}

	rows, err := r.client.Rows(ctx, r.worksheet)
	if err != nil {
		return false, fmt.Errorf("%w: jury roster: %v", tabular.ErrUnavailable, err)
	}
	for _, row := range rows {
		if len(row) <= colEmail {
			continue
		}
		if Normalize(row[colEmail]) == email {
			return true, nil
		}
	}
	return false, nil
}

// Normalize canonicalizes an email for comparison and storage.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
