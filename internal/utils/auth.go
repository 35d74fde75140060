package utils

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/normalization"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

func RegisterInputValidation(ctx context.Context, therapistRepo repos.TherapistRepo, log *logger.Logger, therapist *types.Therapist) error {
	if therapist == nil {
		return apperr.New(apperr.KindUser, "No therapist given, cannot proceed with registration")
	}
	if therapist.Username == "" {
		return apperr.New(apperr.KindUser, "A username is required to register")
	}
	if therapist.Email == "" {
		return apperr.New(apperr.KindUser, "An email is required to register")
	}
	if therapist.Password == "" {
		return apperr.New(apperr.KindUser, "A password is required to register")
	}
	if therapist.Name == "" {
		return apperr.New(apperr.KindUser, "A name is required to register")
	}
	usernameExists, err := therapistRepo.UsernameExists(ctx, nil, therapist.Username)
	if err != nil {
		return fmt.Errorf("check therapist username: %w", err)
	}
	if usernameExists {
		return apperr.New(apperr.KindConflict, "Username already exists")
	}
	emailExists, err := therapistRepo.EmailExists(ctx, nil, therapist.Email)
	if err != nil {
		return fmt.Errorf("check therapist email: %w", err)
	}
	if emailExists {
		return apperr.New(apperr.KindConflict, "Email already exists")
	}
	return nil
}

func LoginInputValidation(ctx context.Context, log *logger.Logger, username, password string) error {
	if username == "" {
		return apperr.New(apperr.KindUser, "Username is required to login")
	}
	if password == "" {
		return apperr.New(apperr.KindUser, "Password is required to login")
	}
	return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, therapist *types.Therapist) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(therapist.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	therapist.Password = string(hashedPassword)
	return nil
}

func NormalizeTherapistFields(ctx context.Context, therapist *types.Therapist) {
	therapist.Username = normalization.ParseUsername(therapist.Username)
	therapist.Email = normalization.ParseEmail(therapist.Email)
	therapist.Password = normalization.ParseInputString(therapist.Password)
	therapist.Name = normalization.ParseInputString(therapist.Name)
}
