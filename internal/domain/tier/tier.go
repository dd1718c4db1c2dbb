// Package tier maps an ordinal rank to a discrete tier label.
package tier

// Tier is a discrete label derived solely from rank.
type Tier string

// Tier labels, best first.
const (
	Elite       Tier = "Elite"
	FirstRound  Tier = "First Round"
	LateFirst   Tier = "Late First"
	SecondRound Tier = "Second Round"
	Undrafted   Tier = "Undrafted"
)

// ByRank classifies a rank via fixed, ordered thresholds. It is total
// over all ranks and monotonic: a lower rank never yields a worse tier.
func ByRank(rank int) Tier {
	switch {
	case rank <= 5:
		return Elite
	case rank <= 15:
		return FirstRound
	case rank <= 30:
		return LateFirst
	case rank <= 45:
		return SecondRound
	default:
		return Undrafted
	}
}
