package scoring

// MetricWeight pairs a metric's weight inside its category with the
// reference value a pro-ready prospect is expected to reach. Raw values
// are normalized against the reference before weighting.
type MetricWeight struct {
	Weight    float64 `koanf:"weight"`
	Reference float64 `koanf:"reference"`
}

// Category groups a set of weighted metrics under a category weight.
type Category struct {
	Weight  float64                 `koanf:"weight"`
	Metrics map[string]MetricWeight `koanf:"metrics"`
}

// ProjectionBand is one row of the ordered score-to-projection table.
// Bands are evaluated top-down; the first band whose Min the score meets
// wins.
type ProjectionBand struct {
	Min         float64 `koanf:"min"`
	Round       string  `koanf:"round"`
	Range       string  `koanf:"range"`
	Description string  `koanf:"description"`
}

// Weights is the versioned scoring table. The exact numbers are a product
// decision, so the table is injected at construction time and overridable
// through configuration; Version participates in cache fingerprints so a
// table change invalidates every cached evaluation.
type Weights struct {
	Version string `koanf:"version"`

	Production Category `koanf:"production"`
	Efficiency Category `koanf:"efficiency"`
	Physical   Category `koanf:"physical"`
	Skills     Category `koanf:"skills"`

	// Projection tables: the low-sample variant is more conservative and
	// applies when a prospect's games played fall under MinGames.
	Projection          []ProjectionBand `koanf:"projection"`
	ProjectionLowSample []ProjectionBand `koanf:"projection_low_sample"`

	// MinGames is the sample size under which confidence degrades and the
	// conservative projection table applies.
	MinGames int `koanf:"min_games"`
}

// Category names as they appear in Evaluation.CategoryScores.
const (
	CategoryProduction = "production"
	CategoryEfficiency = "efficiency"
	CategoryPhysical   = "physical"
	CategorySkills     = "skills"
)

// DefaultWeights returns the current product scoring table.
func DefaultWeights() Weights {
	return Weights{
		Version: "2026.1",
		Production: Category{
			Weight: 0.15,
			Metrics: map[string]MetricWeight{
				"ppg":       {Weight: 0.22, Reference: 15},
				"rpg":       {Weight: 0.18, Reference: 8},
				"apg":       {Weight: 0.25, Reference: 5},
				"fg_pct":    {Weight: 0.15, Reference: 0.45},
				"three_pct": {Weight: 0.12, Reference: 0.35},
				"ft_pct":    {Weight: 0.08, Reference: 0.75},
			},
		},
		Efficiency: Category{
			Weight: 0.30,
			Metrics: map[string]MetricWeight{
				"per":        {Weight: 0.25, Reference: 20},
				"ts_pct":     {Weight: 0.20, Reference: 0.55},
				"usage_rate": {Weight: 0.15, Reference: 25},
				"win_shares": {Weight: 0.15, Reference: 2},
				"vorp":       {Weight: 0.15, Reference: 0.5},
				"bpm":        {Weight: 0.10, Reference: 1},
			},
		},
		Physical: Category{
			Weight: 0.20,
			Metrics: map[string]MetricWeight{
				"height":   {Weight: 0.50},
				"wingspan": {Weight: 0.50},
			},
		},
		Skills: Category{
			Weight: 0.35,
			Metrics: map[string]MetricWeight{
				"shooting":   {Weight: 0.30},
				"playmaking": {Weight: 0.20},
				"defense":    {Weight: 0.30},
				"iq":         {Weight: 0.20},
			},
		},
		Projection: []ProjectionBand{
			{Min: 0.75, Round: "1", Range: "1-10", Description: "Lottery"},
			{Min: 0.68, Round: "1", Range: "11-20", Description: "Mid First Round"},
			{Min: 0.60, Round: "1", Range: "21-30", Description: "Late First Round"},
			{Min: 0.52, Round: "2", Range: "31-45", Description: "Early Second Round"},
			{Min: 0.40, Round: "2", Range: "46-60", Description: "Late Second Round"},
			{Min: 0, Round: "UDFA", Range: "UDFA", Description: "Needs Development"},
		},
		ProjectionLowSample: []ProjectionBand{
			{Min: 0.85, Round: "1", Range: "1-14", Description: "Lottery (high risk)"},
			{Min: 0.70, Round: "1", Range: "15-30", Description: "First Round (high risk)"},
			{Min: 0, Round: "2", Range: "31-60", Description: "Second Round (high risk)"},
		},
		MinGames: 15,
	}
}
