package emotion

import (
	"github.com/mindscribe/mindscribe-backend/internal/apperr"
)

// ScoreMap maps an emotion label to its score in [0.0, 1.0]. A non-empty
// map produced by the scorer carries one entry per label in the
// classifier's vocabulary. Treat it as immutable once produced.
type ScoreMap map[string]float64

// Dominant returns the label with the maximum score. When several labels
// share the maximum, the lexicographically smallest label wins, so the
// selection is reproducible across runs.
func Dominant(scores ScoreMap) (string, float64, error) {
	if len(scores) == 0 {
		return "", 0, apperr.New(apperr.KindInvalidInput, "dominant emotion is undefined for an empty score map")
	}
	var (
		bestLabel string
		bestScore float64
		found     bool
	)
	for label, score := range scores {
		if !found || score > bestScore || (score == bestScore && label < bestLabel) {
			bestLabel = label
			bestScore = score
			found = true
		}
	}
	return bestLabel, bestScore, nil
}
