package model

import "time"

// Snapshot is a timestamped copy of a prospect's stats and score at one
// point in time. Snapshots are append-only; the trend calculator compares
// exactly two of them.
type Snapshot struct {
	ID         string    `json:"id" db:"id"`
	ProspectID string    `json:"prospect_id" db:"prospect_id"`
	CapturedAt time.Time `json:"captured_at" db:"captured_at"`

	Score     float64 `json:"score" db:"score"` // total score at capture time
	PPG       float64 `json:"ppg" db:"ppg"`
	RPG       float64 `json:"rpg" db:"rpg"`
	APG       float64 `json:"apg" db:"apg"`
	PER       float64 `json:"per" db:"per"`
	TSPct     float64 `json:"ts_pct" db:"ts_pct"`
	BPM       float64 `json:"bpm" db:"bpm"`
	WinShares float64 `json:"win_shares" db:"win_shares"`
}

// Direction classifies the sign of a score delta.
type Direction string

// Trend directions.
const (
	TrendUp     Direction = "up"
	TrendDown   Direction = "down"
	TrendStable Direction = "stable"
)

// TrendResult describes how a prospect's standing changed between two
// snapshots of the same window.
type TrendResult struct {
	ProspectID string             `json:"prospect_id"`
	Window     string             `json:"window"` // e.g. "7d"
	Direction  Direction          `json:"direction"`
	ScoreDelta float64            `json:"score_delta"`
	Magnitude  float64            `json:"magnitude"`  // |ScoreDelta|
	Deltas     map[string]float64 `json:"deltas"`     // every per-metric delta
	Highlights map[string]float64 `json:"highlights"` // deltas over their significance threshold
}
