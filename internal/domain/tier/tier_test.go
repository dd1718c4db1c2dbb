package tier_test

import (
	"testing"

	"github.com/hooplens/prospectrank/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestByRank(t *testing.T) {
	Convey("Given the fixed rank thresholds", t, func() {
		Convey("When classifying ranks inside each band", func() {
			So(tier.ByRank(1), ShouldEqual, tier.Elite)
			So(tier.ByRank(5), ShouldEqual, tier.Elite)
			So(tier.ByRank(6), ShouldEqual, tier.FirstRound)
			So(tier.ByRank(15), ShouldEqual, tier.FirstRound)
			So(tier.ByRank(16), ShouldEqual, tier.LateFirst)
			So(tier.ByRank(30), ShouldEqual, tier.LateFirst)
			So(tier.ByRank(31), ShouldEqual, tier.SecondRound)
			So(tier.ByRank(45), ShouldEqual, tier.SecondRound)
			So(tier.ByRank(46), ShouldEqual, tier.Undrafted)
			So(tier.ByRank(200), ShouldEqual, tier.Undrafted)
		})

		Convey("When walking ranks in order the tier never improves", func() {
			order := map[tier.Tier]int{
				tier.Elite:       0,
				tier.FirstRound:  1,
				tier.LateFirst:   2,
				tier.SecondRound: 3,
				tier.Undrafted:   4,
			}
			prev := tier.ByRank(1)
			for rank := 2; rank <= 60; rank++ {
				cur := tier.ByRank(rank)
				So(order[cur], ShouldBeGreaterThanOrEqualTo, order[prev])
				prev = cur
			}
		})
	})
}
