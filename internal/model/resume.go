package model

import "math"

// OptimizationResult is what the AI client hands back for one
// resume/job-description pair. It is never persisted as-is.
type OptimizationResult struct {
	OptimizedResume string   `json:"optimizedResume"`
	MatchScore      int      `json:"matchScore"`
	Suggestions     []string `json:"suggestions"`
}

const (
	MinMatchScore     = 0
	MaxMatchScore     = 100
	DefaultMatchScore = 75
)

// ClampScore rounds a model-reported score and forces it into [0,100].
func ClampScore(score float64) int {
	if math.IsNaN(score) {
		return DefaultMatchScore
	}
	s := math.Round(score)
	if s < MinMatchScore {
		return MinMatchScore
	}
	if s > MaxMatchScore {
		return MaxMatchScore
	}
	return int(s)
}
