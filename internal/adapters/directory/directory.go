// Package directory wraps the registration worksheet: team existence,
// metadata lookup, and the per-docente summaries the dashboard shows.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/itm-analitica/concurso/internal/adapters/tabular"
	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/types"
)

// Registration worksheet column layout. One row per inscribed student, the
// way the registration form appends them.
const (
	colTimestamp = 0
	colDocente   = 1
	colTeamID    = 2
	colTeamName  = 3
	colStudent   = 4

	minRegistrationCells = 4
)

// Directory exposes read-only access to registered teams.
type Directory struct {
	client    tabular.Client
	worksheet string
}

// Option applies a configuration option to the Directory.
type Option func(*Directory)

// WithWorksheet overrides the registration worksheet name.
func WithWorksheet(name string) Option {
	return func(d *Directory) {
		if name != "" {
			d.worksheet = name
		}
	}
}

// New creates a Directory over a tabular client.
func New(client tabular.Client, opts ...Option) *Directory {
	d := &Directory{
		client:    client,
		worksheet: tabular.WorksheetRegistrations,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LookupTeam returns the team registered under teamID, or nil when no such
// team exists. Absence is an expected outcome, not an error. The input is
// trimmed and compared case-sensitively.
func (d *Directory) LookupTeam(ctx context.Context, teamID string) (*model.TeamRecord, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, nil
	}

	rows, err := d.rows(ctx)
	if err != nil {
		return nil, err
	}

	var rec *model.TeamRecord
	for _, row := range rows {
		if len(row) < minRegistrationCells {
			continue
		}
		if strings.TrimSpace(row[colTeamID]) != teamID {
			continue
		}
		if rec == nil {
			rec = &model.TeamRecord{
				ID:      teamID,
				Name:    strings.TrimSpace(row[colTeamName]),
				Docente: strings.TrimSpace(row[colDocente]),
			}
		}
		rec.RosterSize++
	}
	return rec, nil
}

// Teams returns every registered team keyed by id.
func (d *Directory) Teams(ctx context.Context) (map[string]model.TeamRecord, error) {
	rows, err := d.rows(ctx)
	if err != nil {
		return nil, err
	}
	teams := make(map[string]model.TeamRecord)
	for _, row := range rows {
		if len(row) < minRegistrationCells {
			continue
		}
		id := strings.TrimSpace(row[colTeamID])
		if id == "" {
			continue
		}
		rec, ok := teams[id]
		if !ok {
			rec = model.TeamRecord{
				ID:      id,
				Name:    strings.TrimSpace(row[colTeamName]),
				Docente: strings.TrimSpace(row[colDocente]),
			}
		}
		rec.RosterSize++
		teams[id] = rec
	}
	return teams, nil
}

// Summary aggregates the registration worksheet per docente: students,
// distinct teams, and overall totals.
func (d *Directory) Summary(ctx context.Context) (types.RegistrationSummary, error) {
	rows, err := d.rows(ctx)
	if err != nil {
		return types.RegistrationSummary{}, err
	}

	students := make(map[string]int)          // docente -> student rows
	teams := make(map[string]map[string]bool) // docente -> team ids
	allTeams := make(map[string]bool)
	total := 0

	for _, row := range rows {
		if len(row) < minRegistrationCells {
			continue
		}
		docente := strings.TrimSpace(row[colDocente])
		teamID := strings.TrimSpace(row[colTeamID])
		if docente == "" || teamID == "" {
			continue
		}
		students[docente]++
		if teams[docente] == nil {
			teams[docente] = make(map[string]bool)
		}
		teams[docente][teamID] = true
		allTeams[teamID] = true
		total++
	}

	summary := types.RegistrationSummary{
		TotalStudents: total,
		TotalTeams:    len(allTeams),
	}
	for docente, count := range students {
		summary.PerDocente = append(summary.PerDocente, types.DocenteSummary{
			Docente:   docente,
			Students:  count,
			TeamCount: len(teams[docente]),
		})
	}
	// Deterministic output for identical worksheets.
	sort.Slice(summary.PerDocente, func(i, j int) bool {
		return summary.PerDocente[i].Docente < summary.PerDocente[j].Docente
	})
	return summary, nil
}

// TeamCount returns the number of distinct registered teams.
func (d *Directory) TeamCount(ctx context.Context) (int, error) {
	summary, err := d.Summary(ctx)
	if err != nil {
		return 0, err
	}
	return summary.TotalTeams, nil
}

func (d *Directory) rows(ctx context.Context) ([][]string, error) {
	rows, err := d.client.Rows(ctx, d.worksheet)
	if err != nil {
		return nil, fmt.Errorf("%w: registrations: %v", tabular.ErrUnavailable, err)
	}
	return rows, nil
}
