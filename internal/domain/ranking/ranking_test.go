package ranking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itm-analitica/concurso/internal/domain/model"
	"github.com/itm-analitica/concurso/internal/domain/ranking"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	list []model.Ballot
	err  error
}

func (f *fakeSource) List(_ context.Context) ([]model.Ballot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func judgeBallot(team, voter string, scores [3]int) model.Ballot {
	return model.Ballot{
		CastAt:     time.Now(),
		Role:       rubric.RoleJudge,
		VoterEmail: voter,
		TeamID:     team,
		Total:      scores[0] + scores[1] + scores[2],
		Criteria:   []string{"rigor", "viabilidad", "innovacion"},
		Scores:     []int{scores[0], scores[1], scores[2]},
	}
}

func attendeeBallot(team, voter string, scores [3]int) model.Ballot {
	return model.Ballot{
		CastAt:     time.Now(),
		Role:       rubric.RoleAttendee,
		VoterEmail: voter,
		TeamID:     team,
		Total:      scores[0] + scores[1] + scores[2],
		Criteria:   []string{"claridad", "impacto", "presentacion"},
		Scores:     []int{scores[0], scores[1], scores[2]},
	}
}

func TestRankTeams_WeightSensitivity(t *testing.T) {
	Convey("Given one judge ballot (total 12) and one attendee ballot (total 9) for a team", t, func() {
		src := &fakeSource{list: []model.Ballot{
			judgeBallot("EQ-001", "prof@itm.edu.co", [3]int{4, 5, 3}),
			attendeeBallot("EQ-001", "ana@example.com", [3]int{3, 3, 3}),
		}}
		agg := ranking.New(src)

		Convey("When ranking with weights {docente: 0.5, estudiante: 0.5}", func() {
			results, err := agg.RankTeams(context.Background(), map[rubric.Role]float64{
				rubric.RoleJudge:    0.5,
				rubric.RoleAttendee: 0.5,
			})

			Convey("Then the weighted total is 10.5", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 1)
				So(results[0].WeightedTotal, ShouldEqual, 10.5)
				So(results[0].BallotCount, ShouldEqual, 2)
			})
		})

		Convey("When a role is missing from the weight map", func() {
			results, err := agg.RankTeams(context.Background(), map[rubric.Role]float64{
				rubric.RoleJudge: 1.0,
			})

			Convey("Then that role's ballots contribute zero", func() {
				So(err, ShouldBeNil)
				So(results[0].WeightedTotal, ShouldEqual, 12.0)
			})
		})
	})
}

func TestRankTeams_OrderingAndTies(t *testing.T) {
	Convey("Given several teams with colliding weighted totals", t, func() {
		src := &fakeSource{list: []model.Ballot{
			judgeBallot("EQ-003", "a@itm.edu.co", [3]int{3, 3, 3}),
			judgeBallot("EQ-001", "b@itm.edu.co", [3]int{3, 3, 3}),
			judgeBallot("EQ-002", "c@itm.edu.co", [3]int{5, 5, 5}),
		}}
		agg := ranking.New(src)
		weights := map[rubric.Role]float64{rubric.RoleJudge: 1.0}

		Convey("When ranking", func() {
			results, err := agg.RankTeams(context.Background(), weights)
			So(err, ShouldBeNil)

			Convey("Then teams sort by weighted total descending", func() {
				So(results[0].TeamID, ShouldEqual, "EQ-002")
			})

			Convey("And ties break by team id ascending", func() {
				So(results[1].TeamID, ShouldEqual, "EQ-001")
				So(results[2].TeamID, ShouldEqual, "EQ-003")
			})

			Convey("And ranks are sequential from 1", func() {
				So(results[0].Rank, ShouldEqual, 1)
				So(results[1].Rank, ShouldEqual, 2)
				So(results[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When ranking twice with no intervening writes", func() {
			first, err := agg.RankTeams(context.Background(), weights)
			So(err, ShouldBeNil)
			second, err := agg.RankTeams(context.Background(), weights)
			So(err, ShouldBeNil)

			Convey("Then the output is identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestRankTeams_CriterionMeans(t *testing.T) {
	Convey("Given two judge ballots and one attendee ballot for a team", t, func() {
		src := &fakeSource{list: []model.Ballot{
			judgeBallot("EQ-001", "p1@itm.edu.co", [3]int{4, 4, 2}),
			judgeBallot("EQ-001", "p2@itm.edu.co", [3]int{2, 4, 4}),
			attendeeBallot("EQ-001", "ana@example.com", [3]int{5, 5, 5}),
		}}
		agg := ranking.New(src)

		Convey("When ranking", func() {
			results, err := agg.RankTeams(context.Background(), map[rubric.Role]float64{
				rubric.RoleJudge:    0.7,
				rubric.RoleAttendee: 0.3,
			})
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 1)
			means := results[0].CriterionMean

			Convey("Then judge criteria average across judge ballots only", func() {
				So(means["docente"]["rigor"], ShouldEqual, 3.0)
				So(means["docente"]["viabilidad"], ShouldEqual, 4.0)
				So(means["docente"]["innovacion"], ShouldEqual, 3.0)
			})

			Convey("And attendee criteria are reported separately", func() {
				So(means["estudiante"]["claridad"], ShouldEqual, 5.0)
				So(means["docente"], ShouldNotContainKey, "claridad")
			})
		})
	})
}

func TestRankTeams_SourceFailure(t *testing.T) {
	Convey("Given a ballot source that fails", t, func() {
		wantErr := errors.New("store down")
		agg := ranking.New(&fakeSource{err: wantErr})

		Convey("Then the failure propagates", func() {
			_, err := agg.RankTeams(context.Background(), nil)
			So(errors.Is(err, wantErr), ShouldBeTrue)
		})
	})
}

func TestRankTeams_Empty(t *testing.T) {
	Convey("Given no ballots at all", t, func() {
		agg := ranking.New(&fakeSource{})

		Convey("Then the ranking is empty, not an error", func() {
			results, err := agg.RankTeams(context.Background(), map[rubric.Role]float64{rubric.RoleJudge: 1})
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})
	})
}
