package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

// SessionNoteRepo scopes every query by both patient id and therapist id.
// ListByPatient orders by timestamp descending, which is the display order;
// trend analysis re-sorts ascending on its own.
type SessionNoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.SessionNote) ([]*types.SessionNote, error)
	ListByPatient(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) ([]*types.SessionNote, error)
	DeleteByPatient(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) error
}

type sessionNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionNoteRepo(db *gorm.DB, baseLog *logger.Logger) SessionNoteRepo {
	repoLog := baseLog.With("repo", "SessionNoteRepo")
	return &sessionNoteRepo{db: db, log: repoLog}
}

func (nr *sessionNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.SessionNote) ([]*types.SessionNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	if len(notes) == 0 {
		return []*types.SessionNote{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (nr *sessionNoteRepo) ListByPatient(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) ([]*types.SessionNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var results []*types.SessionNote
	if err := transaction.WithContext(ctx).
		Where("patient_id = ? AND therapist_id = ?", patientID, therapistID).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *sessionNoteRepo) DeleteByPatient(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	return transaction.WithContext(ctx).
		Where("patient_id = ? AND therapist_id = ?", patientID, therapistID).
		Delete(&types.SessionNote{}).Error
}
