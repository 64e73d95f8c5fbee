package domain

// HistoryRecord is the engine-facing view of a purchase: everything the
// preference and budget models need, nothing they do not.
type HistoryRecord struct {
	BeverageName string  `json:"beverage_name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Mood         string  `json:"mood"`
	TimeBucket   string  `json:"time_bucket"`
	DaysAgo      float64 `json:"days_ago"`
}

// ScoredCandidate is one ranked recommendation with its per-model scores.
type ScoredCandidate struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	BayesianScore float64 `json:"bayesian_score"`
	MDPScore      float64 `json:"mdp_score"`
	CSPScore      float64 `json:"csp_score"`
	Score         float64 `json:"score"`
}
