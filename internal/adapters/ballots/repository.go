// Package ballots wraps the ballot worksheet: an append-only collection of
// cast evaluations with a defensive row codec.
package ballots

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/itm-analitica/concurso/internal/adapters/tabular"
	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/pkg/logger"
	"github.com/itm-analitica/concurso/pkg/metrics"
)

// Repository provides list/append access to stored ballots.
type Repository struct {
	client    tabular.Client
	worksheet string
	log       logger.Logger

	skipped atomic.Int64 // malformed rows seen across all reads
}

// Option applies a configuration option to the Repository.
type Option func(*Repository)

// WithWorksheet overrides the ballot worksheet name.
func WithWorksheet(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.worksheet = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Repository over a tabular client.
func New(client tabular.Client, opts ...Option) *Repository {
	r := &Repository{
		client:    client,
		worksheet: tabular.WorksheetBallots,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns every well-formed ballot currently stored. Malformed rows
// are skipped and reported as data-quality errors, never a failure: the
// aggregator must not crash because one row was hand-edited.
func (r *Repository) List(ctx context.Context) ([]model.Ballot, error) {
	rows, err := r.client.Rows(ctx, r.worksheet)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: ballots: %v", tabular.ErrUnavailable, err)
	}

	out := make([]model.Ballot, 0, len(rows))
	for i, row := range rows {
		b, err := decodeRow(row)
		if err != nil {
			r.skipped.Add(1)
			metrics.RecordMalformedRow()
			r.logger().Warn(ctx, "skipping malformed ballot row",
				logger.Int("row", i),
				logger.Error(err),
			)
			continue
		}
		out = append(out, b)
	}
	metrics.UpdateTotalBallots(len(out))
	return out, nil
}

// Append stores one ballot. Once it returns nil the ballot is permanent;
// there is no retraction or edit.
func (r *Repository) Append(ctx context.Context, b model.Ballot) error {
	if err := r.client.Append(ctx, r.worksheet, encodeRow(b)); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: append ballot: %v", tabular.ErrUnavailable, err)
	}
	return nil
}

// SkippedRows reports how many malformed rows reads have encountered.
func (r *Repository) SkippedRows() int64 {
	return r.skipped.Load()
}

func (r *Repository) logger() logger.Logger {
	if r.log == nil {
		r.log = logger.Get()
	}
	return r.log
}
