package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

type TherapistService interface {
	GetTherapist(ctx context.Context, therapistID uuid.UUID) (*types.Therapist, error)
}

type therapistService struct {
	log           *logger.Logger
	therapistRepo repos.TherapistRepo
}

func NewTherapistService(baseLog *logger.Logger, therapistRepo repos.TherapistRepo) TherapistService {
	serviceLog := baseLog.With("service", "TherapistService")
	return &therapistService{log: serviceLog, therapistRepo: therapistRepo}
}

func (ts *therapistService) GetTherapist(ctx context.Context, therapistID uuid.UUID) (*types.Therapist, error) {
	therapists, err := ts.therapistRepo.GetByIDs(ctx, nil, []uuid.UUID{therapistID})
	if err != nil {
		return nil, fmt.Errorf("load therapist: %w", err)
	}
	if len(therapists) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "Therapist not found")
	}
	return therapists[0], nil
}
