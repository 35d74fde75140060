package services

import (
	"context"
	"strings"
	"sync"

	"github.com/mindscribe/mindscribe-backend/internal/emotion"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
)

// EmotionScorer turns raw note text into a canonical emotion score map.
// An empty result means "nothing to analyze" for blank input, or "scoring
// unavailable" when the classifier failed; callers must not persist a note
// on an empty result.
type EmotionScorer interface {
	Score(ctx context.Context, text string) emotion.ScoreMap
}

type emotionScorer struct {
	log *logger.Logger

	// The classifier is expensive to construct, so it is built once on
	// first use and shared for the lifetime of the process.
	once      sync.Once
	client    ClassifierClient
	initErr   error
	newClient func(log *logger.Logger) (ClassifierClient, error)
}

func NewEmotionScorer(log *logger.Logger) EmotionScorer {
	return &emotionScorer{
		log:       log.With("service", "EmotionScorer"),
		newClient: NewClassifierClient,
	}
}

// NewEmotionScorerWithClient injects a pre-built classifier. Used by tests
// and by callers that manage the client themselves.
func NewEmotionScorerWithClient(log *logger.Logger, client ClassifierClient) EmotionScorer {
	return &emotionScorer{
		log: log.With("service", "EmotionScorer"),
		newClient: func(*logger.Logger) (ClassifierClient, error) {
			return client, nil
		},
	}
}

func (es *emotionScorer) Score(ctx context.Context, text string) emotion.ScoreMap {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return emotion.ScoreMap{}
	}

	es.once.Do(func() {
		es.client, es.initErr = es.newClient(es.log)
	})
	if es.initErr != nil {
		es.log.Error("Emotion classifier unavailable", "error", es.initErr)
		return emotion.ScoreMap{}
	}

	results, err := es.client.Classify(ctx, trimmed)
	if err != nil {
		es.log.Error("Emotion classification failed", "error", err)
		return emotion.ScoreMap{}
	}

	scores := make(emotion.ScoreMap, len(results))
	for _, result := range results {
		label := strings.ToLower(strings.TrimSpace(result.Label))
		if label == "" {
			continue
		}
		scores[label] = clampScore(result.Score)
	}
	return scores
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
