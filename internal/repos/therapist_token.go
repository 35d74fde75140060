package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

type TherapistTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*types.TherapistToken) ([]*types.TherapistToken, error)
	GetByTherapistIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) ([]*types.TherapistToken, error)
	GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.TherapistToken, error)
	GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.TherapistToken, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error
	DeleteByTherapistIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) error
}

type therapistTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTherapistTokenRepo(db *gorm.DB, baseLog *logger.Logger) TherapistTokenRepo {
	repoLog := baseLog.With("repo", "TherapistTokenRepo")
	return &therapistTokenRepo{db: db, log: repoLog}
}

func (tr *therapistTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.TherapistToken) ([]*types.TherapistToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tokens) == 0 {
		return []*types.TherapistToken{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (tr *therapistTokenRepo) GetByTherapistIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) ([]*types.TherapistToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.TherapistToken
	if len(therapistIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("therapist_id IN ?", therapistIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *therapistTokenRepo) GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*types.TherapistToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.TherapistToken
	if len(accessTokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("access_token IN ?", accessTokens).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *therapistTokenRepo) GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*types.TherapistToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.TherapistToken
	if len(refreshTokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("refresh_token IN ?", refreshTokens).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *therapistTokenRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tokenIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", tokenIDs).
		Delete(&types.TherapistToken{}).Error
}

func (tr *therapistTokenRepo) DeleteByTherapistIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(therapistIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("therapist_id IN ?", therapistIDs).
		Delete(&types.TherapistToken{}).Error
}
