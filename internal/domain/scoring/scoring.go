// Package scoring computes evaluations from normalized prospect records.
//
// The engine is a pure function of a prospect's score-relevant fields: it
// never errors, missing inputs contribute zero weight instead of failing,
// and a prospect with no scoreable input at all yields a zero evaluation.
package scoring

import (
	"math"

	"github.com/hooplens/prospectrank/internal/domain/model"
)

// Normalization caps: a raw metric may exceed its reference, but its
// contribution is bounded so one outlier stat cannot dominate a category.
const (
	productionCap = 2.0
	efficiencyCap = 3.0

	skillScale = 10.0 // skill sub-scores live on a 0-10 scale

	// Age bonus: young prospects already scoring well carry extra upside.
	youthAgeCutoff   = 19.0
	youthScoreFloor  = 0.60
	youthTotalBonus  = 0.02
	upsideAgeCeiling = 21.0
	upsidePerYear    = 0.025

	heightTolerance   = 10.0 // inches of deviation that zero the height score
	wingspanRefSpread = 6.0  // inches of advantage that max the wingspan score
)

// Ideal heights per position, in inches.
var idealHeightByPosition = map[string]float64{
	"PG": 75,
	"SG": 75,
	"SF": 79,
	"PF": 81,
	"C":  83,
}

// Engine scores prospects against an injected weight table.
type Engine struct {
	weights Weights
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights replaces the default scoring table.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the table the engine scores against.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Version returns the scoring table version.
func (e *Engine) Version() string {
	return e.weights.Version
}

// Evaluate produces an evaluation for a normalized prospect. Identical
// score-relevant fields always produce an identical evaluation.
func (e *Engine) Evaluate(p model.Prospect) model.Evaluation {
	multiplier := competitionMultiplier(p.League, p.Conference)

	categories := map[string]*float64{
		CategoryProduction: scaled(e.scoreProduction(p), multiplier),
		CategoryEfficiency: scaled(e.scoreEfficiency(p), multiplier),
		CategoryPhysical:   e.scorePhysical(p),
		CategorySkills:     e.scoreSkills(p),
	}
	weightFor := map[string]float64{
		CategoryProduction: e.weights.Production.Weight,
		CategoryEfficiency: e.weights.Efficiency.Weight,
		CategoryPhysical:   e.weights.Physical.Weight,
		CategorySkills:     e.weights.Skills.Weight,
	}

	scores := make(map[string]model.CategoryScore)
	weighted, available := 0.0, 0.0
	for name, score := range categories {
		if score == nil {
			continue
		}
		w := weightFor[name]
		scores[name] = model.CategoryScore{Score: *score, Weight: w}
		weighted += *score * w
		available += w
	}

	if available == 0 {
		// Nothing scoreable at all: degrade to a zero evaluation rather
		// than failing the pipeline.
		return model.Evaluation{
			CategoryScores:  scores,
			DraftProjection: pickBand(e.weights.Projection, 0),
		}
	}

	total := clamp01(weighted / available)
	if p.Age != nil && *p.Age <= youthAgeCutoff && total >= youthScoreFloor {
		total = clamp01(total + youthTotalBonus)
	}

	potential := total
	if p.Age != nil && *p.Age < upsideAgeCeiling {
		potential = clamp01(total + (upsideAgeCeiling-*p.Age)*upsidePerYear)
	}

	games := 0
	if p.GamesPlayed != nil {
		games = *p.GamesPlayed
	}
	lowSample := games < e.weights.MinGames
	confidence := 1.0
	if lowSample && e.weights.MinGames > 0 {
		confidence = roundTo(float64(games)/float64(e.weights.MinGames), 2)
	}

	table := e.weights.Projection
	if lowSample {
		table = e.weights.ProjectionLowSample
	}

	return model.Evaluation{
		TotalScore:      roundTo(total, 4),
		PotentialScore:  roundTo(potential, 4),
		ConfidenceScore: confidence,
		CategoryScores:  scores,
		DraftProjection: pickBand(table, total),
	}
}

// scoreProduction weighs per-game production against pro-ready reference
// values. Returns nil when every production input is missing.
func (e *Engine) scoreProduction(p model.Prospect) *float64 {
	inputs := map[string]*float64{
		"ppg":       p.PPG,
		"rpg":       p.RPG,
		"apg":       p.APG,
		"fg_pct":    p.FGPct,
		"three_pct": p.ThreePct,
		"ft_pct":    p.FTPct,
	}
	return weighAgainstReferences(inputs, e.weights.Production.Metrics, productionCap)
}

// scoreEfficiency weighs advanced metrics. BPM and VORP can go negative;
// a negative value contributes zero rather than dragging the category
// below its floor.
func (e *Engine) scoreEfficiency(p model.Prospect) *float64 {
	metrics := e.weights.Efficiency.Metrics
	inputs := map[string]*float64{
		"per":        p.PER,
		"ts_pct":     p.TSPct,
		"usage_rate": p.UsageRate,
		"win_shares": p.WinShares,
		"vorp":       p.VORP,
		"bpm":        p.BPM,
	}

	score, available := 0.0, 0.0
	for name, value := range inputs {
		mw, ok := metrics[name]
		if !ok || value == nil || mw.Reference == 0 {
			continue
		}
		var normalized float64
		switch name {
		case "bpm", "vorp":
			if *value > 0 {
				normalized = *value / mw.Reference
			}
		default:
			normalized = math.Min(*value/mw.Reference, efficiencyCap)
		}
		score += normalized * mw.Weight
		available += mw.Weight
	}
	if available == 0 {
		return nil
	}
	v := clamp01(score / available)
	return &v
}

// scorePhysical combines height fit for the position with wingspan
// advantage over height.
func (e *Engine) scorePhysical(p model.Prospect) *float64 {
	metrics := e.weights.Physical.Metrics
	score, available := 0.0, 0.0

	if p.HeightIn != nil {
		ideal, ok := idealHeightByPosition[p.Position]
		if !ok {
			ideal = idealHeightByPosition["PG"]
		}
		fit := math.Max(0, 1-math.Abs(*p.HeightIn-ideal)/heightTolerance)
		score += fit * metrics["height"].Weight
		available += metrics["height"].Weight
	}

	if p.HeightIn != nil && p.WingspanIn != nil {
		advantage := *p.WingspanIn - *p.HeightIn
		reach := clamp01(advantage / wingspanRefSpread)
		score += reach * metrics["wingspan"].Weight
		available += metrics["wingspan"].Weight
	}

	if available == 0 {
		return nil
	}
	v := clamp01(score / available)
	return &v
}

// scoreSkills estimates technical skill sub-scores (0-10) from the stat
// line, then weighs them. Sources rarely report scouted skill grades, so
// shooting is read off the splits, playmaking off assist volume, defense
// off stocks, and feel off BPM.
func (e *Engine) scoreSkills(p model.Prospect) *float64 {
	metrics := e.weights.Skills.Metrics
	subs := map[string]*float64{
		"shooting":   estimateShooting(p.FTPct, p.ThreePct),
		"playmaking": estimatePlaymaking(p.APG),
		"defense":    estimateDefense(p.SPG, p.BPG),
		"iq":         estimateFeel(p.BPM),
	}

	score, available := 0.0, 0.0
	for name, value := range subs {
		mw, ok := metrics[name]
		if !ok || value == nil {
			continue
		}
		score += (*value / skillScale) * mw.Weight
		available += mw.Weight
	}
	if available == 0 {
		return nil
	}
	v := clamp01(score / available)
	return &v
}

func estimateShooting(ftPct, threePct *float64) *float64 {
	switch {
	case ftPct != nil && threePct != nil:
		v := math.Min(skillScale, (*ftPct*0.6+*threePct*0.4)*skillScale)
		return &v
	case ftPct != nil:
		v := math.Min(skillScale, *ftPct*skillScale)
		return &v
	case threePct != nil:
		// Slightly discounted when the line only carries 3P%.
		v := math.Min(skillScale, *threePct*9)
		return &v
	}
	return nil
}

func estimatePlaymaking(apg *float64) *float64 {
	if apg == nil {
		return nil
	}
	v := math.Min(skillScale, 4+*apg*0.75)
	return &v
}

func estimateDefense(spg, bpg *float64) *float64 {
	if spg == nil && bpg == nil {
		return nil
	}
	steals, blocks := 0.0, 0.0
	if spg != nil {
		steals = *spg
	}
	if bpg != nil {
		blocks = *bpg
	}
	v := math.Min(skillScale, steals*2.5+blocks*1.5+2)
	return &v
}

func estimateFeel(bpm *float64) *float64 {
	if bpm == nil {
		return nil
	}
	v := math.Max(0, math.Min(skillScale, 5+*bpm/2))
	return &v
}

// weighAgainstReferences normalizes each present input against its
// reference, caps it, and returns the available-weight-normalized sum.
func weighAgainstReferences(inputs map[string]*float64, metrics map[string]MetricWeight, ceiling float64) *float64 {
	score, available := 0.0, 0.0
	for name, value := range inputs {
		mw, ok := metrics[name]
		if !ok || value == nil || mw.Reference == 0 {
			continue
		}
		normalized := math.Min(*value/mw.Reference, ceiling)
		score += normalized * mw.Weight
		available += mw.Weight
	}
	if available == 0 {
		return nil
	}
	v := clamp01(score / available)
	return &v
}

// scaled applies the competition multiplier to a category score, keeping
// the result inside [0,1].
func scaled(score *float64, multiplier float64) *float64 {
	if score == nil {
		return nil
	}
	v := math.Min(1.0, *score*multiplier)
	return &v
}

// pickBand walks the ordered projection table and returns the first band
// the score qualifies for.
func pickBand(table []ProjectionBand, score float64) model.DraftProjection {
	for _, band := range table {
		if score >= band.Min {
			return model.DraftProjection{Round: band.Round, Range: band.Range, Description: band.Description}
		}
	}
	return model.DraftProjection{Round: "UDFA", Range: "UDFA", Description: "Needs Development"}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
