// Package model contains domain models passed between layers.
package model

// Prospect is the raw record for a scored subject. Records are owned by
// the external prospect source and treated as immutable for the duration
// of an evaluation pass.
//
// Every score-relevant field is a pointer: nil means "not reported",
// which is distinct from an explicit zero. The scoring engine drops nil
// inputs from its weighted sums instead of treating them as zeroes.
type Prospect struct {
	ID       string // stable identifier from the source
	Name     string
	Position string // PG, SG, SF, PF, C
	Rank     int    // ordinal consensus rank, 1 = best

	Age         *float64
	GamesPlayed *int

	// Per-game production.
	PPG *float64
	RPG *float64
	APG *float64
	SPG *float64
	BPG *float64

	// Shooting splits, expressed as fractions (0.45 = 45%).
	FGPct    *float64
	ThreePct *float64
	FTPct    *float64

	// Advanced metrics where the source provides them.
	PER       *float64
	TSPct     *float64
	UsageRate *float64
	WinShares *float64
	VORP      *float64
	BPM       *float64

	// Physical measurements as the source reports them. Height and
	// wingspan arrive in heterogeneous encodings; the normalize package
	// resolves them into HeightIn/WingspanIn.
	HeightRaw   string
	WingspanRaw string
	HeightIn    *float64 // total inches, nil if unparseable
	WingspanIn  *float64 // total inches, estimated from height when absent

	// Competition context used for the competition multiplier.
	League     string
	Conference string
}
