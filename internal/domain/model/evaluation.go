package model

// CategoryScore is one named sub-dimension of the composite score.
type CategoryScore struct {
	Score  float64 `json:"score"`  // normalized to [0,1]
	Weight float64 `json:"weight"` // weight it carried in the composite
}

// DraftProjection is a discrete label chosen from the ordered projection
// threshold table.
type DraftProjection struct {
	Round       string `json:"round"` // "1", "2", or "UDFA"
	Range       string `json:"range"` // e.g. "1-10"
	Description string `json:"description"`
}

// Evaluation is the derived, cacheable result of scoring a prospect.
// It is a pure function of a prospect's score-relevant fields and is
// never mutated after creation; a cache miss recomputes it wholesale.
type Evaluation struct {
	TotalScore      float64                  `json:"total_score"` // [0,1]
	PotentialScore  float64                  `json:"potential_score"`
	ConfidenceScore float64                  `json:"confidence_score"`
	CategoryScores  map[string]CategoryScore `json:"category_scores"`
	DraftProjection DraftProjection          `json:"draft_projection"`
}

// BoardEntry is a row on the ranked prospect board.
type BoardEntry struct {
	Rank       int     `json:"rank"`
	ProspectID string  `json:"prospect_id"`
	Name       string  `json:"name"`
	Tier       string  `json:"tier"`
	TotalScore float64 `json:"total_score"`
}
