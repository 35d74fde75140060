package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/emotion"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/normalization"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

// NoteService runs the annotation pipeline: validate the text, score it,
// resolve the dominant emotion, and persist the fully formed note. A note
// is only ever stored with its complete score map; a scoring failure
// aborts the whole operation.
type NoteService interface {
	Annotate(ctx context.Context, therapistID, patientID uuid.UUID, text string) (*types.SessionNote, error)
	ListNotes(ctx context.Context, therapistID, patientID uuid.UUID) ([]*types.SessionNote, error)
}

type noteService struct {
	log         *logger.Logger
	patientRepo repos.PatientRepo
	noteRepo    repos.SessionNoteRepo
	scorer      EmotionScorer
}

func NewNoteService(
	baseLog *logger.Logger,
	patientRepo repos.PatientRepo,
	noteRepo repos.SessionNoteRepo,
	scorer EmotionScorer,
) NoteService {
	serviceLog := baseLog.With("service", "NoteService")
	return &noteService{
		log:         serviceLog,
		patientRepo: patientRepo,
		noteRepo:    noteRepo,
		scorer:      scorer,
	}
}

func (ns *noteService) Annotate(ctx context.Context, therapistID, patientID uuid.UUID, text string) (*types.SessionNote, error) {
	noteText := normalization.ParseInputString(text)
	if noteText == "" {
		return nil, apperr.New(apperr.KindUser, "Session notes are required")
	}

	patient, err := ns.patientRepo.GetByID(ctx, nil, patientID, therapistID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if patient == nil {
		return nil, apperr.New(apperr.KindNotFound, "Patient not found")
	}

	scores := ns.scorer.Score(ctx, noteText)
	if len(scores) == 0 {
		return nil, apperr.New(apperr.KindScoringUnavailable, "Emotion scoring is unavailable, please try again")
	}

	// The dominant label is recomputed by every consumer rather than
	// stored; resolving it here guarantees the score map is resolvable
	// before anything is persisted.
	dominant, _, err := emotion.Dominant(scores)
	if err != nil {
		return nil, err
	}

	note := &types.SessionNote{
		ID:          uuid.New(),
		PatientID:   patientID,
		TherapistID: therapistID,
		NoteText:    noteText,
		CreatedAt:   time.Now(),
	}
	if err := note.SetScores(scores); err != nil {
		return nil, err
	}

	if _, err := ns.noteRepo.Create(ctx, nil, []*types.SessionNote{note}); err != nil {
		ns.log.Error("Annotate failed to persist note", "error", err, "patient_id", patientID)
		return nil, fmt.Errorf("create session note: %w", err)
	}
	ns.log.Debug("Annotated session note", "note_id", note.ID, "dominant_emotion", dominant)
	return note, nil
}

func (ns *noteService) ListNotes(ctx context.Context, therapistID, patientID uuid.UUID) ([]*types.SessionNote, error) {
	patient, err := ns.patientRepo.GetByID(ctx, nil, patientID, therapistID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if patient == nil {
		return nil, apperr.New(apperr.KindNotFound, "Patient not found")
	}
	notes, err := ns.noteRepo.ListByPatient(ctx, nil, patientID, therapistID)
	if err != nil {
		return nil, fmt.Errorf("list session notes: %w", err)
	}
	return notes, nil
}
