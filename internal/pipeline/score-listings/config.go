// internal/pipeline/score-listings/config.go
package scorelistings

// ScoringConfig controls the heuristic relevance score.
type ScoringConfig struct {
	BaseScore    int
	JitterSpread int
	MinScore     int
	MaxScore     int
}

// DefaultScoringConfig returns the production scoring weights.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:    50,
		JitterSpread: 3,
		MinScore:     0,
		MaxScore:     100,
	}
}
