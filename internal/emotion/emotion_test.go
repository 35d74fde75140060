package emotion

import (
	"testing"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
)

func TestDominant(t *testing.T) {
	cases := []struct {
		name      string
		scores    ScoreMap
		wantLabel string
		wantScore float64
	}{
		{
			name:      "single_entry",
			scores:    ScoreMap{"joy": 0.9},
			wantLabel: "joy",
			wantScore: 0.9,
		},
		{
			name:      "clear_maximum",
			scores:    ScoreMap{"joy": 0.1, "sadness": 0.7, "anger": 0.2},
			wantLabel: "sadness",
			wantScore: 0.7,
		},
		{
			name:      "tie_breaks_lexicographically",
			scores:    ScoreMap{"surprise": 0.5, "anger": 0.5, "joy": 0.5},
			wantLabel: "anger",
			wantScore: 0.5,
		},
		{
			name:      "tie_at_zero",
			scores:    ScoreMap{"neutral": 0.0, "fear": 0.0},
			wantLabel: "fear",
			wantScore: 0.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, score, err := Dominant(tc.scores)
			if err != nil {
				t.Fatalf("Dominant returned error: %v", err)
			}
			if label != tc.wantLabel || score != tc.wantScore {
				t.Fatalf("Dominant=%q/%v, want %q/%v", label, score, tc.wantLabel, tc.wantScore)
			}
		})
	}
}

func TestDominantIsDeterministic(t *testing.T) {
	scores := ScoreMap{"joy": 0.5, "sadness": 0.5, "anger": 0.5, "fear": 0.5}
	firstLabel, firstScore, err := Dominant(scores)
	if err != nil {
		t.Fatalf("Dominant returned error: %v", err)
	}
	for i := 0; i < 100; i++ {
		label, score, err := Dominant(scores)
		if err != nil {
			t.Fatalf("Dominant returned error: %v", err)
		}
		if label != firstLabel || score != firstScore {
			t.Fatalf("Dominant not deterministic: got %q/%v then %q/%v", firstLabel, firstScore, label, score)
		}
	}
}

func TestDominantEmptyMap(t *testing.T) {
	_, _, err := Dominant(ScoreMap{})
	if err == nil {
		t.Fatal("Dominant on empty map should fail")
	}
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("Dominant error kind=%v, want invalid_input", apperr.KindOf(err))
	}
}
