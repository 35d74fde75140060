package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

type TherapistRepo interface {
	Create(ctx context.Context, tx *gorm.DB, therapists []*types.Therapist) ([]*types.Therapist, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) ([]*types.Therapist, error)
	GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Therapist, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type therapistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTherapistRepo(db *gorm.DB, baseLog *logger.Logger) TherapistRepo {
	repoLog := baseLog.With("repo", "TherapistRepo")
	return &therapistRepo{db: db, log: repoLog}
}

func (tr *therapistRepo) Create(ctx context.Context, tx *gorm.DB, therapists []*types.Therapist) ([]*types.Therapist, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(therapists) == 0 {
		return []*types.Therapist{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&therapists).Error; err != nil {
		return nil, err
	}

	return therapists, nil
}

func (tr *therapistRepo) GetByIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) ([]*types.Therapist, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Therapist

	if len(therapistIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", therapistIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *therapistRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Therapist, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Therapist
	if len(usernames) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("username IN ?", usernames).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *therapistRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Therapist{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tr *therapistRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Therapist{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
