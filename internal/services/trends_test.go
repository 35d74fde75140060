package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/emotion"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

func seedNote(t *testing.T, repo *fakeSessionNoteRepo, patient *types.Patient, createdAt time.Time, scores emotion.ScoreMap) *types.SessionNote {
	t.Helper()
	note := &types.SessionNote{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		TherapistID: patient.TherapistID,
		NoteText:    "note",
		CreatedAt:   createdAt,
	}
	if err := note.SetScores(scores); err != nil {
		t.Fatalf("SetScores: %v", err)
	}
	repo.notes = append(repo.notes, note)
	return note
}

func TestTimeSeriesAscendingFromDescendingFetch(t *testing.T) {
	therapistID := uuid.New()
	patient := testPatient(therapistID)
	noteRepo := &fakeSessionNoteRepo{}
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	// The repo hands notes back newest-first; the series must come out
	// oldest-first regardless.
	seedNote(t, noteRepo, patient, base.Add(2*time.Hour), emotion.ScoreMap{"joy": 0.9})
	seedNote(t, noteRepo, patient, base, emotion.ScoreMap{"joy": 0.2})
	seedNote(t, noteRepo, patient, base.Add(time.Hour), emotion.ScoreMap{"joy": 0.5})

	svc := NewTrendsService(newTestLogger(), newFakePatientRepo(patient), noteRepo)
	series, err := svc.TimeSeries(context.Background(), therapistID, patient.ID)
	if err != nil {
		t.Fatalf("TimeSeries returned error: %v", err)
	}
	if len(series.Rows) != 3 {
		t.Fatalf("len(rows)=%d, want 3", len(series.Rows))
	}
	for i := 1; i < len(series.Rows); i++ {
		if series.Rows[i].Timestamp.Before(series.Rows[i-1].Timestamp) {
			t.Fatalf("series not ascending at index %d", i)
		}
	}
	if series.Rows[0].Scores["joy"] != 0.2 || series.Rows[2].Scores["joy"] != 0.9 {
		t.Fatalf("rows out of order: first joy=%v last joy=%v", series.Rows[0].Scores["joy"], series.Rows[2].Scores["joy"])
	}
}

func TestTimeSeriesUnknownPatient(t *testing.T) {
	svc := NewTrendsService(newTestLogger(), newFakePatientRepo(), &fakeSessionNoteRepo{})
	_, err := svc.TimeSeries(context.Background(), uuid.New(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("kind=%v, want not_found", apperr.KindOf(err))
	}
}

func TestTimeSeriesCrossTenant(t *testing.T) {
	therapistA := uuid.New()
	therapistB := uuid.New()
	patient := testPatient(therapistA)
	noteRepo := &fakeSessionNoteRepo{}
	seedNote(t, noteRepo, patient, time.Now(), emotion.ScoreMap{"joy": 0.5})

	svc := NewTrendsService(newTestLogger(), newFakePatientRepo(patient), noteRepo)
	_, err := svc.TimeSeries(context.Background(), therapistB, patient.ID)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("kind=%v, want not_found", apperr.KindOf(err))
	}
}

func TestTrendsAggregates(t *testing.T) {
	therapistID := uuid.New()
	patient := testPatient(therapistID)
	noteRepo := &fakeSessionNoteRepo{}
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	seedNote(t, noteRepo, patient, base, emotion.ScoreMap{"joy": 0.2, "sadness": 0.7})
	seedNote(t, noteRepo, patient, base.Add(time.Hour), emotion.ScoreMap{"joy": 0.8, "sadness": 0.1})
	seedNote(t, noteRepo, patient, base.Add(2*time.Hour), emotion.ScoreMap{"joy": 0.5, "sadness": 0.3})

	svc := NewTrendsService(newTestLogger(), newFakePatientRepo(patient), noteRepo)
	ctx := context.Background()

	counts, err := svc.DominantCounts(ctx, therapistID, patient.ID)
	if err != nil {
		t.Fatalf("DominantCounts returned error: %v", err)
	}
	if counts["joy"] != 2 || counts["sadness"] != 1 || len(counts) != 2 {
		t.Fatalf("counts=%v, want joy:2 sadness:1", counts)
	}

	summary, err := svc.Summary(ctx, therapistID, patient.ID, "joy")
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.Mean != 0.5 || summary.Max != 0.8 || summary.Min != 0.2 {
		t.Fatalf("summary=%+v, want mean=0.5 max=0.8 min=0.2", summary)
	}

	// Last two joy readings are 0.8 then 0.5.
	direction, err := svc.Trend(ctx, therapistID, patient.ID, "joy")
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if direction != emotion.DirectionDecreasing {
		t.Fatalf("direction=%q, want decreasing", direction)
	}
}

func TestTrendSingleNote(t *testing.T) {
	therapistID := uuid.New()
	patient := testPatient(therapistID)
	noteRepo := &fakeSessionNoteRepo{}
	seedNote(t, noteRepo, patient, time.Now(), emotion.ScoreMap{"joy": 0.5})

	svc := NewTrendsService(newTestLogger(), newFakePatientRepo(patient), noteRepo)
	_, err := svc.Trend(context.Background(), therapistID, patient.ID, "joy")
	if !apperr.IsKind(err, apperr.KindInsufficientData) {
		t.Fatalf("kind=%v, want insufficient_data", apperr.KindOf(err))
	}
}

func TestTrendsReflectLatestState(t *testing.T) {
	therapistID := uuid.New()
	patient := testPatient(therapistID)
	noteRepo := &fakeSessionNoteRepo{}
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	seedNote(t, noteRepo, patient, base, emotion.ScoreMap{"joy": 0.2})
	seedNote(t, noteRepo, patient, base.Add(time.Hour), emotion.ScoreMap{"joy": 0.8})

	svc := NewTrendsService(newTestLogger(), newFakePatientRepo(patient), noteRepo)
	ctx := context.Background()

	direction, err := svc.Trend(ctx, therapistID, patient.ID, "joy")
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if direction != emotion.DirectionIncreasing {
		t.Fatalf("direction=%q, want increasing", direction)
	}

	// A newer note flips the trend on the very next read.
	seedNote(t, noteRepo, patient, base.Add(2*time.Hour), emotion.ScoreMap{"joy": 0.1})
	direction, err = svc.Trend(ctx, therapistID, patient.ID, "joy")
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if direction != emotion.DirectionDecreasing {
		t.Fatalf("direction=%q, want decreasing after new note", direction)
	}
}
