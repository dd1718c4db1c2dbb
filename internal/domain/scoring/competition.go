package scoring

// Competition multipliers scale production and efficiency scores by the
// level a prospect compiled them against. NCAA conferences take priority
// over the league field; unknown leagues fall back to a conservative
// professional default.

const (
	defaultNCAAMultiplier = 1.0
	defaultProMultiplier  = 0.95
)

var conferenceMultipliers = map[string]float64{
	"SEC":      1.10,
	"Big 12":   1.10,
	"Big Ten":  1.08,
	"ACC":      1.08,
	"Pac-12":   1.07,
	"Big East": 1.07,
	"WCC":      1.05,
	"AAC":      1.05,
	"MWC":      1.04,
	"A-10":     1.02,
	"CUSA":     1.0,
}

var leagueMultipliers = map[string]float64{
	"EuroLeague":     1.20,
	"LNB Pro A":      1.15,
	"Liga ACB":       1.15,
	"NBL":            1.12,
	"G League":       1.08,
	"Overtime Elite": 1.02,
	"NBB":            0.85,
}

// competitionMultiplier resolves the multiplier for a league/conference
// pair. A named conference wins; a bare NCAA league gets the NCAA
// default; any other league resolves through the pro table.
func competitionMultiplier(league, conference string) float64 {
	if conference != "" {
		if m, ok := conferenceMultipliers[conference]; ok {
			return m
		}
		return defaultNCAAMultiplier
	}
	if league == "NCAA" || league == "" {
		return defaultNCAAMultiplier
	}
	if m, ok := leagueMultipliers[league]; ok {
		return m
	}
	return defaultProMultiplier
}
