package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/emotion"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
)

// TrendsService projects a patient's full note history into trend views.
// Every call re-fetches the history; aggregates are never cached, so they
// always reflect the latest persisted state.
type TrendsService interface {
	TimeSeries(ctx context.Context, therapistID, patientID uuid.UUID) (emotion.TimeSeries, error)
	DominantCounts(ctx context.Context, therapistID, patientID uuid.UUID) (map[string]int, error)
	Summary(ctx context.Context, therapistID, patientID uuid.UUID, label string) (emotion.Summary, error)
	Trend(ctx context.Context, therapistID, patientID uuid.UUID, label string) (emotion.Direction, error)
}

type trendsService struct {
	log         *logger.Logger
	patientRepo repos.PatientRepo
	noteRepo    repos.SessionNoteRepo
}

func NewTrendsService(
	baseLog *logger.Logger,
	patientRepo repos.PatientRepo,
	noteRepo repos.SessionNoteRepo,
) TrendsService {
	serviceLog := baseLog.With("service", "TrendsService")
	return &trendsService{
		log:         serviceLog,
		patientRepo: patientRepo,
		noteRepo:    noteRepo,
	}
}

func (ts *trendsService) TimeSeries(ctx context.Context, therapistID, patientID uuid.UUID) (emotion.TimeSeries, error) {
	patient, err := ts.patientRepo.GetByID(ctx, nil, patientID, therapistID)
	if err != nil {
		return emotion.TimeSeries{}, fmt.Errorf("load patient: %w", err)
	}
	if patient == nil {
		return emotion.TimeSeries{}, apperr.New(apperr.KindNotFound, "Patient not found")
	}

	notes, err := ts.noteRepo.ListByPatient(ctx, nil, patientID, therapistID)
	if err != nil {
		return emotion.TimeSeries{}, fmt.Errorf("list session notes: %w", err)
	}

	observations := make([]emotion.Observation, 0, len(notes))
	for _, note := range notes {
		scores, sErr := note.Scores()
		if sErr != nil {
			return emotion.TimeSeries{}, sErr
		}
		observations = append(observations, emotion.Observation{
			NoteID:    note.ID,
			Timestamp: note.CreatedAt,
			Scores:    scores,
		})
	}
	return emotion.NewTimeSeries(observations)
}

func (ts *trendsService) DominantCounts(ctx context.Context, therapistID, patientID uuid.UUID) (map[string]int, error) {
	series, err := ts.TimeSeries(ctx, therapistID, patientID)
	if err != nil {
		return nil, err
	}
	return series.DominantCounts(), nil
}

func (ts *trendsService) Summary(ctx context.Context, therapistID, patientID uuid.UUID, label string) (emotion.Summary, error) {
	series, err := ts.TimeSeries(ctx, therapistID, patientID)
	if err != nil {
		return emotion.Summary{}, err
	}
	return series.Summarize(label)
}

func (ts *trendsService) Trend(ctx context.Context, therapistID, patientID uuid.UUID, label string) (emotion.Direction, error) {
	series, err := ts.TimeSeries(ctx, therapistID, patientID)
	if err != nil {
		return "", err
	}
	return series.Trend(label)
}
