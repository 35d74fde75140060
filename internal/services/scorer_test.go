package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
)

func TestScoreEmptyTextSkipsClassifier(t *testing.T) {
	fake := &fakeClassifier{results: []LabelScore{{Label: "joy", Score: 0.9}}}
	scorer := NewEmotionScorerWithClient(newTestLogger(), fake)

	for _, text := range []string{"", "   ", "\n\t "} {
		scores := scorer.Score(context.Background(), text)
		if len(scores) != 0 {
			t.Fatalf("Score(%q) should be empty, got %v", text, scores)
		}
	}
	if fake.calls != 0 {
		t.Fatalf("classifier invoked %d times for blank input, want 0", fake.calls)
	}
}

func TestScoreNormalizesOutput(t *testing.T) {
	fake := &fakeClassifier{results: []LabelScore{
		{Label: " Joy ", Score: 0.75},
		{Label: "SADNESS", Score: 1.2},
		{Label: "anger", Score: -0.1},
	}}
	scorer := NewEmotionScorerWithClient(newTestLogger(), fake)

	scores := scorer.Score(context.Background(), "a good session")
	if len(scores) != 3 {
		t.Fatalf("len(scores)=%d, want 3", len(scores))
	}
	if scores["joy"] != 0.75 {
		t.Fatalf("joy=%v, want 0.75", scores["joy"])
	}
	if scores["sadness"] != 1.0 {
		t.Fatalf("sadness=%v, want clamped to 1.0", scores["sadness"])
	}
	if scores["anger"] != 0.0 {
		t.Fatalf("anger=%v, want clamped to 0.0", scores["anger"])
	}
}

func TestScoreClassifierFailureYieldsEmpty(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("model unavailable")}
	scorer := NewEmotionScorerWithClient(newTestLogger(), fake)

	scores := scorer.Score(context.Background(), "some text")
	if len(scores) != 0 {
		t.Fatalf("classifier failure should yield empty scores, got %v", scores)
	}
}

func TestScoreConstructsClientOnce(t *testing.T) {
	fake := &fakeClassifier{results: []LabelScore{{Label: "joy", Score: 0.5}}}
	constructions := 0
	scorer := &emotionScorer{
		log: newTestLogger(),
		newClient: func(_ *logger.Logger) (ClassifierClient, error) {
			constructions++
			return fake, nil
		},
	}

	for i := 0; i < 5; i++ {
		scorer.Score(context.Background(), "text")
	}
	if constructions != 1 {
		t.Fatalf("client constructed %d times, want 1", constructions)
	}
}
