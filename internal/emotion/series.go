package emotion

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
)

// Observation is one annotated note projected down to what the aggregator
// needs: when it happened and how it scored.
type Observation struct {
	NoteID    uuid.UUID
	Timestamp time.Time
	Scores    ScoreMap
}

// Row is one entry of a patient's emotion time series. Dominant is
// recomputed from Scores when the series is built, never read from storage.
type Row struct {
	NoteID    uuid.UUID `json:"note_id"`
	Timestamp time.Time `json:"timestamp"`
	Dominant  string    `json:"dominant_emotion"`
	Scores    ScoreMap  `json:"scores"`
}

// TimeSeries is the ascending-timestamp projection of a patient's note
// history. Rows sharing a timestamp are ordered by note id so repeated
// builds are deterministic.
type TimeSeries struct {
	Rows []Row `json:"rows"`
}

// Direction classifies the delta between the two most recent observations
// of one emotion.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// Summary holds the aggregate statistics of one emotion's score column.
type Summary struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// NewTimeSeries builds a series from observations in any order. An empty
// input yields an empty series. An observation with no scores is a
// contract violation: unscored notes are never persisted.
func NewTimeSeries(observations []Observation) (TimeSeries, error) {
	rows := make([]Row, 0, len(observations))
	for _, obs := range observations {
		dominant, _, err := Dominant(obs.Scores)
		if err != nil {
			return TimeSeries{}, apperr.Wrap(apperr.KindInvalidInput, "observation has no emotion scores", err)
		}
		rows = append(rows, Row{
			NoteID:    obs.NoteID,
			Timestamp: obs.Timestamp,
			Dominant:  dominant,
			Scores:    obs.Scores,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].NoteID.String() < rows[j].NoteID.String()
		}
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	return TimeSeries{Rows: rows}, nil
}

// Labels returns the sorted union of labels across all rows.
func (ts TimeSeries) Labels() []string {
	seen := map[string]struct{}{}
	for _, row := range ts.Rows {
		for label := range row.Scores {
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (ts TimeSeries) hasLabel(label string) bool {
	for _, row := range ts.Rows {
		if _, ok := row.Scores[label]; ok {
			return true
		}
	}
	return false
}

// DominantCounts returns how often each label appears as the dominant
// emotion across the series. Labels that never dominate are omitted.
func (ts TimeSeries) DominantCounts() map[string]int {
	counts := make(map[string]int)
	for _, row := range ts.Rows {
		counts[row.Dominant]++
	}
	return counts
}

// Summarize computes mean, max and min over the named emotion's score
// column. It fails with InvalidInput on an empty series or a label that is
// not a column of the series.
func (ts TimeSeries) Summarize(label string) (Summary, error) {
	if len(ts.Rows) == 0 {
		return Summary{}, apperr.New(apperr.KindInvalidInput, "cannot summarize an empty series")
	}
	if !ts.hasLabel(label) {
		return Summary{}, apperr.Newf(apperr.KindInvalidInput, "unknown emotion label %q", label)
	}
	var (
		sum   float64
		count int
		max   float64
		min   float64
	)
	for _, row := range ts.Rows {
		score, ok := row.Scores[label]
		if !ok {
			continue
		}
		if count == 0 {
			max = score
			min = score
		} else {
			if score > max {
				max = score
			}
			if score < min {
				min = score
			}
		}
		sum += score
		count++
	}
	return Summary{Mean: sum / float64(count), Max: max, Min: min}, nil
}

// Trend classifies the direction of the named emotion between the two most
// recent rows. Stable means the delta is exactly zero; no epsilon band is
// applied. Fewer than two rows is InsufficientData.
func (ts TimeSeries) Trend(label string) (Direction, error) {
	if len(ts.Rows) < 2 {
		return "", apperr.New(apperr.KindInsufficientData, "at least two observations are required to compute a trend")
	}
	if !ts.hasLabel(label) {
		return "", apperr.Newf(apperr.KindInvalidInput, "unknown emotion label %q", label)
	}
	last := ts.Rows[len(ts.Rows)-1]
	secondToLast := ts.Rows[len(ts.Rows)-2]
	lastScore, ok := last.Scores[label]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidInput, "label %q missing from the most recent observation", label)
	}
	prevScore, ok := secondToLast.Scores[label]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidInput, "label %q missing from the second most recent observation", label)
	}
	delta := lastScore - prevScore
	switch {
	case delta > 0:
		return DirectionIncreasing, nil
	case delta < 0:
		return DirectionDecreasing, nil
	default:
		return DirectionStable, nil
	}
}
