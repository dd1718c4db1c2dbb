package trend_test

import (
	"testing"
	"time"

	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func snapshotPair(id string, priorScore, currentScore float64) (model.Snapshot, model.Snapshot) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	prior := model.Snapshot{
		ID:         id + "-prior",
		ProspectID: id,
		CapturedAt: now.Add(-7 * 24 * time.Hour),
		Score:      priorScore,
	}
	current := model.Snapshot{
		ID:         id + "-current",
		ProspectID: id,
		CapturedAt: now,
		Score:      currentScore,
	}
	return current, prior
}

func TestCalculator_Compute(t *testing.T) {
	Convey("Given a trend calculator with the default epsilon", t, func() {
		calc := trend.NewCalculator()

		Convey("When the score rises past the stable band", func() {
			current, prior := snapshotPair("p1", 0.70, 0.75)
			result := calc.Compute(current, prior, "7d")

			So(result, ShouldNotBeNil)
			So(result.Direction, ShouldEqual, model.TrendUp)
			So(result.ScoreDelta, ShouldAlmostEqual, 0.05)
			So(result.Magnitude, ShouldAlmostEqual, 0.05)
			So(result.Window, ShouldEqual, "7d")
		})

		Convey("When the score falls past the stable band", func() {
			current, prior := snapshotPair("p1", 0.75, 0.70)
			result := calc.Compute(current, prior, "7d")

			So(result, ShouldNotBeNil)
			So(result.Direction, ShouldEqual, model.TrendDown)
			So(result.Magnitude, ShouldAlmostEqual, 0.05)
		})

		Convey("When the movement stays inside the band it reads as stable", func() {
			current, prior := snapshotPair("p1", 0.70, 0.71)
			result := calc.Compute(current, prior, "7d")

			So(result, ShouldNotBeNil)
			So(result.Direction, ShouldEqual, model.TrendStable)
		})

		Convey("When the snapshots describe different prospects", func() {
			current, _ := snapshotPair("p1", 0.70, 0.75)
			_, prior := snapshotPair("p2", 0.70, 0.75)
			So(calc.Compute(current, prior, "7d"), ShouldBeNil)
		})

		Convey("When the prior is not actually prior", func() {
			current, prior := snapshotPair("p1", 0.70, 0.75)
			So(calc.Compute(prior, current, "7d"), ShouldBeNil)
		})

		Convey("When per-metric movement clears its threshold", func() {
			current, prior := snapshotPair("p1", 0.60, 0.70)
			prior.PPG, current.PPG = 14.0, 15.2
			prior.APG, current.APG = 4.0, 4.2
			prior.TSPct, current.TSPct = 0.52, 0.56
			result := calc.Compute(current, prior, "7d")

			So(result, ShouldNotBeNil)
			So(result.Highlights, ShouldContainKey, "ppg")
			So(result.Highlights["ppg"], ShouldAlmostEqual, 1.2)
			So(result.Highlights, ShouldContainKey, "ts_pct")
			So(result.Highlights, ShouldNotContainKey, "apg")
			So(result.Deltas["apg"], ShouldAlmostEqual, 0.2)
		})
	})

	Convey("Given a calculator with a custom epsilon", t, func() {
		calc := trend.NewCalculator(trend.WithEpsilon(0.10))

		Convey("When the same move lands inside the wider band", func() {
			current, prior := snapshotPair("p1", 0.70, 0.75)
			result := calc.Compute(current, prior, "7d")
			So(result.Direction, ShouldEqual, model.TrendStable)
		})
	})

	Convey("Given a tight epsilon on a 0-100 score scale", t, func() {
		calc := trend.NewCalculator(trend.WithEpsilon(0.01))

		Convey("When the score moves from 70 to 75", func() {
			current, prior := snapshotPair("p1", 70.0, 75.0)
			result := calc.Compute(current, prior, "7d")

			So(result, ShouldNotBeNil)
			So(result.Direction, ShouldEqual, model.TrendUp)
			So(result.Magnitude, ShouldAlmostEqual, 5.0)
		})
	})
}

func TestTopMovers(t *testing.T) {
	Convey("Given a mixed set of trend results", t, func() {
		mk := func(id string, delta float64) model.TrendResult {
			dir := model.TrendStable
			switch {
			case delta > 0.02:
				dir = model.TrendUp
			case delta < -0.02:
				dir = model.TrendDown
			}
			mag := delta
			if mag < 0 {
				mag = -mag
			}
			return model.TrendResult{ProspectID: id, Direction: dir, ScoreDelta: delta, Magnitude: mag}
		}
		results := []model.TrendResult{
			mk("a", 0.05),
			mk("b", -0.08),
			mk("c", 0.11),
			mk("d", 0.01),
			mk("e", 0.05),
			mk("f", -0.03),
		}

		Convey("When taking the top rising", func() {
			rising := trend.TopRising(results, 2)

			Convey("Then the largest gains come first", func() {
				So(rising, ShouldHaveLength, 2)
				So(rising[0].ProspectID, ShouldEqual, "c")
			})

			Convey("And equal magnitudes break on prospect ID", func() {
				So(rising[1].ProspectID, ShouldEqual, "a")
			})
		})

		Convey("When taking the top falling", func() {
			falling := trend.TopFalling(results, 5)
			So(falling, ShouldHaveLength, 2)
			So(falling[0].ProspectID, ShouldEqual, "b")
			So(falling[1].ProspectID, ShouldEqual, "f")
		})

		Convey("When no results move in the requested direction", func() {
			So(trend.TopRising([]model.TrendResult{mk("d", 0.01)}, 3), ShouldBeEmpty)
		})
	})
}

func TestParseWindow(t *testing.T) {
	Convey("Given named trend windows", t, func() {
		Convey("When parsing day shorthand", func() {
			d, err := trend.ParseWindow("7d")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 7*24*time.Hour)
		})

		Convey("When parsing plain duration syntax", func() {
			d, err := trend.ParseWindow("24h")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 24*time.Hour)
		})

		Convey("When parsing invalid windows", func() {
			for _, raw := range []string{"", "0d", "-3d", "sevend", "1w"} {
				_, err := trend.ParseWindow(raw)
				So(err, ShouldNotBeNil)
			}
		})
	})
}
