package jury_test

import (
	"context"
	"errors"
	"testing"

	"github.com/itm-analitica/concurso/internal/adapters/jury"
	"github.com/itm-analitica/concurso/internal/adapters/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIsAuthorizedJudge(t *testing.T) {
	Convey("Given a jury worksheet", t, func() {
		store := tabular.NewMemoryClient(tabular.WithRows(tabular.WorksheetJury,
			[]string{"prof@itm.edu.co"},
			[]string{"  Decana@ITM.edu.co  "},
			[]string{},
		))
		roster := jury.New(store)
		ctx := context.Background()

		Convey("An email on the roster is authorized", func() {
			ok, err := roster.IsAuthorizedJudge(ctx, "prof@itm.edu.co")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Matching ignores case and surrounding whitespace on both sides", func() {
			ok, err := roster.IsAuthorizedJudge(ctx, " DECANA@itm.edu.co ")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("An email off the roster is not authorized", func() {
			ok, err := roster.IsAuthorizedJudge(ctx, "random@gmail.com")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("A blank email is not authorized", func() {
			ok, err := roster.IsAuthorizedJudge(ctx, "   ")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a jury worksheet that cannot be read", t, func() {
		store := tabular.NewMemoryClient(tabular.WithFailure(errors.New("timeout")))
		roster := jury.New(store)

		Convey("The check surfaces ErrUnavailable", func() {
			_, err := roster.IsAuthorizedJudge(context.Background(), "prof@itm.edu.co")
			So(errors.Is(err, tabular.ErrUnavailable), ShouldBeTrue)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Normalize trims and lowercases", t, func() {
		So(jury.Normalize("  Ana.Ruiz@ITM.edu.co "), ShouldEqual, "ana.ruiz@itm.edu.co")
		So(jury.Normalize(""), ShouldEqual, "")
	})
}
