package ballots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
)

// Persisted row layout: [timestamp, role, voter_email, team_id, total,
// criterion_1, criterion_2, criterion_3]. Column order and the fixed number
// of criterion columns must be preserved or stored ballots cannot be
// reconstructed.
const (
	colCastAt = 0
	colRole   = 1
	colEmail  = 2
	colTeamID = 3
	colTotal  = 4
	colScores = 5 // first of rubric.CriteriaCount() score columns
)

// rowLen is the exact cell count of a well-formed ballot row.
func rowLen() int {
	return colScores + rubric.CriteriaCount()
}

// encodeRow turns a ballot into its worksheet row.
func encodeRow(b model.Ballot) []string {
	row := make([]string, 0, rowLen())
	row = append(row,
		b.CastAt.UTC().Format(time.RFC3339),
		string(b.Role),
		b.VoterEmail,
		b.TeamID,
		strconv.Itoa(b.Total),
	)
	for _, s := range b.Scores {
		row = append(row, strconv.Itoa(s))
	}
	return row
}

// decodeRow reconstructs a ballot from a worksheet row, validating cell
// count, types, score range, and the total/sum invariant. Any violation
// makes the row malformed; callers skip and report it instead of failing.
func decodeRow(row []string) (model.Ballot, error) {
	if len(row) != rowLen() {
		return model.Ballot{}, fmt.Errorf("want %d cells, got %d", rowLen(), len(row))
	}

	castAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row[colCastAt]))
	if err != nil {
		return model.Ballot{}, fmt.Errorf("bad timestamp %q", row[colCastAt])
	}
	role, err := rubric.ParseRole(row[colRole])
	if err != nil {
		return model.Ballot{}, fmt.Errorf("bad role %q", row[colRole])
	}
	email := strings.ToLower(strings.TrimSpace(row[colEmail]))
	teamID := strings.TrimSpace(row[colTeamID])
	if email == "" || teamID == "" {
		return model.Ballot{}, fmt.Errorf("empty voter or team")
	}
	total, err := strconv.Atoi(strings.TrimSpace(row[colTotal]))
	if err != nil {
		return model.Ballot{}, fmt.Errorf("bad total %q", row[colTotal])
	}

	criteria, err := rubric.CriteriaFor(role)
	if err != nil {
		return model.Ballot{}, err
	}
	scores := make([]int, len(criteria))
	sum := 0
	for i := range criteria {
		v, err := strconv.Atoi(strings.TrimSpace(row[colScores+i]))
		if err != nil {
			return model.Ballot{}, fmt.Errorf("bad score %q", row[colScores+i])
		}
		if !rubric.InRange(v) {
			return model.Ballot{}, fmt.Errorf("score %d out of range", v)
		}
		scores[i] = v
		sum += v
	}
	if sum != total {
		return model.Ballot{}, fmt.Errorf("total %d does not match score sum %d", total, sum)
	}

	return model.Ballot{
		CastAt:     castAt,
		Role:       role,
		VoterEmail: email,
		TeamID:     teamID,
		Total:      total,
		Criteria:   criteria,
		Scores:     scores,
	}, nil
}
