package scoring_test

import (
	"errors"
	"testing"

	"github.com/itm-analitica/concurso/internal/domain/rubric"
	"github.com/itm-analitica/concurso/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given a judge ballot's criterion values", t, func() {
		values := map[string]int{"rigor": 4, "viabilidad": 5, "innovacion": 3}

		Convey("When scoring", func() {
			result, err := scoring.Score(rubric.RoleJudge, values)

			Convey("Then the total is the arithmetic sum", func() {
				So(err, ShouldBeNil)
				So(result.Total, ShouldEqual, 12)
			})

			Convey("And scores follow rubric order", func() {
				So(result.Criteria, ShouldResemble, []string{"rigor", "viabilidad", "innovacion"})
				So(result.Scores, ShouldResemble, []int{4, 5, 3})
			})
		})
	})

	Convey("Given an attendee ballot's criterion values", t, func() {
		values := map[string]int{"claridad": 3, "impacto": 3, "presentacion": 3}

		Convey("Then scoring sums them against the attendee rubric", func() {
			result, err := scoring.Score(rubric.RoleAttendee, values)
			So(err, ShouldBeNil)
			So(result.Total, ShouldEqual, 9)
		})
	})

	Convey("Given out-of-range values", t, func() {
		Convey("Then a value above the range is rejected", func() {
			_, err := scoring.Score(rubric.RoleJudge, map[string]int{"rigor": 6, "viabilidad": 5, "innovacion": 3})
			So(errors.Is(err, scoring.ErrOutOfRange), ShouldBeTrue)
		})

		Convey("Then a value below the range is rejected", func() {
			_, err := scoring.Score(rubric.RoleJudge, map[string]int{"rigor": 0, "viabilidad": 5, "innovacion": 3})
			So(errors.Is(err, scoring.ErrOutOfRange), ShouldBeTrue)
		})
	})

	Convey("Given a criterion set that does not match the rubric", t, func() {
		Convey("Then a missing criterion is rejected", func() {
			_, err := scoring.Score(rubric.RoleJudge, map[string]int{"rigor": 4, "viabilidad": 5})
			So(errors.Is(err, scoring.ErrOutOfRubric), ShouldBeTrue)
		})

		Convey("Then an extra criterion is rejected", func() {
			_, err := scoring.Score(rubric.RoleJudge, map[string]int{
				"rigor": 4, "viabilidad": 5, "innovacion": 3, "claridad": 2,
			})
			So(errors.Is(err, scoring.ErrOutOfRubric), ShouldBeTrue)
		})

		Convey("Then a wrong-role criterion name is rejected", func() {
			_, err := scoring.Score(rubric.RoleJudge, map[string]int{"claridad": 4, "viabilidad": 5, "innovacion": 3})
			So(errors.Is(err, scoring.ErrOutOfRubric), ShouldBeTrue)
		})
	})

	Convey("Given an unknown role", t, func() {
		_, err := scoring.Score(rubric.Role("tallerista"), map[string]int{"a": 1})
		So(errors.Is(err, rubric.ErrUnknownRole), ShouldBeTrue)
	})
}

func TestScoreToken(t *testing.T) {
	Convey("Given aligned criteria and scores from a token", t, func() {
		criteria := []string{"rigor", "viabilidad", "innovacion"}

		Convey("Then in-range scores sum", func() {
			total, err := scoring.ScoreToken(criteria, []int{4, 5, 3})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 12)
		})

		Convey("Then an out-of-range score still fails the defensive check", func() {
			_, err := scoring.ScoreToken(criteria, []int{4, 9, 3})
			So(errors.Is(err, scoring.ErrOutOfRange), ShouldBeTrue)
		})

		Convey("Then mismatched lengths fail", func() {
			_, err := scoring.ScoreToken(criteria, []int{4, 5})
			So(errors.Is(err, scoring.ErrOutOfRubric), ShouldBeTrue)
		})
	})
}
