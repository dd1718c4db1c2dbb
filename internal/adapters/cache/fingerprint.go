package cache

import (
	"strconv"
	"strings"

	"github.com/hooplens/prospectrank/internal/domain/model"
)

// Field values never contain '|', so the join is unambiguous.
const fingerprintSep = "|"

// nilToken renders an absent field distinctly from an explicit zero.
const nilToken = "-"

// Fingerprint derives the cache key for a prospect under a given scoring
// table version. Every field the normalizer or the scoring engine reads
// participates in a fixed order, so changing any score-relevant field or
// the table version produces a different key and therefore a miss.
func Fingerprint(p model.Prospect, version string) string {
	fields := []string{
		p.ID,
		version,
		p.Position,
		p.League,
		p.Conference,
		p.HeightRaw,
		p.WingspanRaw,
		fmtFloat(p.HeightIn),
		fmtFloat(p.WingspanIn),
		fmtFloat(p.Age),
		fmtInt(p.GamesPlayed),
		fmtFloat(p.PPG),
		fmtFloat(p.RPG),
		fmtFloat(p.APG),
		fmtFloat(p.SPG),
		fmtFloat(p.BPG),
		fmtFloat(p.FGPct),
		fmtFloat(p.ThreePct),
		fmtFloat(p.FTPct),
		fmtFloat(p.PER),
		fmtFloat(p.TSPct),
		fmtFloat(p.UsageRate),
		fmtFloat(p.WinShares),
		fmtFloat(p.VORP),
		fmtFloat(p.BPM),
	}
	return strings.Join(fields, fingerprintSep)
}

func fmtFloat(v *float64) string {
	if v == nil {
		return nilToken
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func fmtInt(v *int) string {
	if v == nil {
		return nilToken
	}
	return strconv.Itoa(*v)
}
