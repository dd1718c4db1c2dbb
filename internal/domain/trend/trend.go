// Package trend compares time-separated snapshots of the same prospect
// and classifies how the prospect's standing is changing.
package trend

import (
	"math"
	"sort"

	"github.com/hooplens/prospectrank/internal/domain/model"
)

// defaultEpsilon is the score delta under which movement reads as noise.
const defaultEpsilon = 0.02

// Per-metric significance thresholds: a delta surfaces as a highlight
// only when its absolute value clears the metric's threshold. Rate stats
// move in small absolute steps, rating-scale stats in larger ones.
func defaultThresholds() map[string]float64 {
	return map[string]float64{
		"ppg":        0.5,
		"rpg":        0.5,
		"apg":        0.3,
		"per":        1.0,
		"ts_pct":     0.02,
		"bpm":        1.0,
		"win_shares": 0.2,
	}
}

// Calculator computes trend results from snapshot pairs.
type Calculator struct {
	epsilon    float64
	thresholds map[string]float64
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithEpsilon sets the stable-band width around a zero score delta.
func WithEpsilon(epsilon float64) Option {
	return func(c *Calculator) {
		if epsilon > 0 {
			c.epsilon = epsilon
		}
	}
}

// WithThresholds overrides per-metric significance thresholds. Metrics
// absent from the map keep their defaults.
func WithThresholds(thresholds map[string]float64) Option {
	return func(c *Calculator) {
		for metric, t := range thresholds {
			if t > 0 {
				c.thresholds[metric] = t
			}
		}
	}
}

// NewCalculator creates a trend calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		epsilon:    defaultEpsilon,
		thresholds: defaultThresholds(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute derives a trend result from exactly two snapshots of the same
// prospect. It returns nil when the pair does not describe one prospect
// across the window (mismatched IDs, or prior not actually prior); a
// missing prior is not an error, the prospect is simply absent from
// trend views.
func (c *Calculator) Compute(current, prior model.Snapshot, window string) *model.TrendResult {
	if current.ProspectID == "" || current.ProspectID != prior.ProspectID {
		return nil
	}
	if !prior.CapturedAt.Before(current.CapturedAt) {
		return nil
	}

	scoreDelta := current.Score - prior.Score
	direction := model.TrendStable
	switch {
	case scoreDelta > c.epsilon:
		direction = model.TrendUp
	case scoreDelta < -c.epsilon:
		direction = model.TrendDown
	}

	deltas := map[string]float64{
		"ppg":        current.PPG - prior.PPG,
		"rpg":        current.RPG - prior.RPG,
		"apg":        current.APG - prior.APG,
		"per":        current.PER - prior.PER,
		"ts_pct":     current.TSPct - prior.TSPct,
		"bpm":        current.BPM - prior.BPM,
		"win_shares": current.WinShares - prior.WinShares,
	}

	highlights := make(map[string]float64)
	for metric, delta := range deltas {
		if threshold, ok := c.thresholds[metric]; ok && math.Abs(delta) > threshold {
			highlights[metric] = delta
		}
	}

	return &model.TrendResult{
		ProspectID: current.ProspectID,
		Window:     window,
		Direction:  direction,
		ScoreDelta: scoreDelta,
		Magnitude:  math.Abs(scoreDelta),
		Deltas:     deltas,
		Highlights: highlights,
	}
}

// TopRising returns the top-k results moving up, largest delta first.
// Ties break on prospect ID ascending so the ordering is deterministic.
func TopRising(results []model.TrendResult, k int) []model.TrendResult {
	return topMovers(results, k, model.TrendUp)
}

// TopFalling returns the top-k results moving down, largest drop first.
func TopFalling(results []model.TrendResult, k int) []model.TrendResult {
	return topMovers(results, k, model.TrendDown)
}

func topMovers(results []model.TrendResult, k int, direction model.Direction) []model.TrendResult {
	movers := make([]model.TrendResult, 0, len(results))
	for _, r := range results {
		if r.Direction == direction {
			movers = append(movers, r)
		}
	}
	sort.Slice(movers, func(i, j int) bool {
		if movers[i].Magnitude != movers[j].Magnitude {
			return movers[i].Magnitude > movers[j].Magnitude
		}
		return movers[i].ProspectID < movers[j].ProspectID
	})
	if k > 0 && len(movers) > k {
		movers = movers[:k]
	}
	return movers
}
