package normalize_test

import (
	"testing"

	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMeasurement(t *testing.T) {
	Convey("Given raw measurement strings", t, func() {
		Convey("When parsing feet-inches with an apostrophe", func() {
			v := normalize.ParseMeasurement(`6'5"`)
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 77)
		})

		Convey("When parsing feet-inches without the inch mark", func() {
			v := normalize.ParseMeasurement("6'5")
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 77)
		})

		Convey("When parsing feet-inches with a dash", func() {
			v := normalize.ParseMeasurement("6-5")
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 77)
		})

		Convey("When parsing a whole-feet value", func() {
			v := normalize.ParseMeasurement("7'")
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 84)
		})

		Convey("When parsing a structured object with a US value", func() {
			v := normalize.ParseMeasurement(`{"us":"6'8\"","intl":203}`)
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 80)
		})

		Convey("When parsing a structured object with only a metric value", func() {
			v := normalize.ParseMeasurement(`{"intl":203.2}`)
			So(v, ShouldNotBeNil)
			So(*v, ShouldAlmostEqual, 80, 0.01)
		})

		Convey("When parsing a bare number over 100 it reads as centimeters", func() {
			v := normalize.ParseMeasurement("196")
			So(v, ShouldNotBeNil)
			So(*v, ShouldAlmostEqual, 77.17, 0.01)
		})

		Convey("When parsing a bare number under 100 it reads as inches", func() {
			v := normalize.ParseMeasurement("77.5")
			So(v, ShouldNotBeNil)
			So(*v, ShouldEqual, 77.5)
		})

		Convey("When parsing malformed input", func() {
			So(normalize.ParseMeasurement(""), ShouldBeNil)
			So(normalize.ParseMeasurement("tall"), ShouldBeNil)
			So(normalize.ParseMeasurement("six'five"), ShouldBeNil)
			So(normalize.ParseMeasurement(`{"us":12}`), ShouldBeNil)
		})
	})
}

func TestEstimateWingspan(t *testing.T) {
	Convey("Given a measured height", t, func() {
		Convey("When the position has a known offset", func() {
			So(normalize.EstimateWingspan(76, "C"), ShouldEqual, 80.5)
			So(normalize.EstimateWingspan(76, "PG"), ShouldEqual, 78.5)
			So(normalize.EstimateWingspan(76, "PF"), ShouldEqual, 80)
		})

		Convey("When the position is unknown the default offset applies", func() {
			So(normalize.EstimateWingspan(76, "G/F"), ShouldEqual, 79)
			So(normalize.EstimateWingspan(76, ""), ShouldEqual, 79)
		})
	})
}

func TestProspect(t *testing.T) {
	Convey("Given a prospect with raw measurements", t, func() {
		p := model.Prospect{
			ID:        "p1",
			Position:  "SF",
			HeightRaw: `6'9"`,
		}

		Convey("When normalized", func() {
			out := normalize.Prospect(p)

			Convey("Then height is parsed to inches", func() {
				So(out.HeightIn, ShouldNotBeNil)
				So(*out.HeightIn, ShouldEqual, 81)
			})

			Convey("And a missing wingspan is estimated from height", func() {
				So(out.WingspanIn, ShouldNotBeNil)
				So(*out.WingspanIn, ShouldEqual, 84.5)
			})
		})
	})

	Convey("Given a prospect with a measured wingspan", t, func() {
		ws := 85.0
		p := model.Prospect{
			ID:          "p2",
			Position:    "SF",
			HeightRaw:   "6-9",
			WingspanRaw: "7-1",
			WingspanIn:  &ws,
		}

		Convey("When normalized the measured value is never overwritten", func() {
			out := normalize.Prospect(p)
			So(out.WingspanIn, ShouldNotBeNil)
			So(*out.WingspanIn, ShouldEqual, 85)
		})
	})

	Convey("Given a prospect with no measurements at all", t, func() {
		p := model.Prospect{ID: "p3", Position: "C"}

		Convey("When normalized it passes through unchanged", func() {
			out := normalize.Prospect(p)
			So(out.HeightIn, ShouldBeNil)
			So(out.WingspanIn, ShouldBeNil)
		})
	})
}
