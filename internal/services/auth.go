package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/normalization"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/requestdata"
	"github.com/mindscribe/mindscribe-backend/internal/types"
	"github.com/mindscribe/mindscribe-backend/internal/utils"
)

type AuthService interface {
	RegisterTherapist(ctx context.Context, therapist *types.Therapist) error
	LoginTherapist(ctx context.Context, username, password string) (string, string, error)
	RefreshTherapist(ctx context.Context) (string, string, error)
	LogoutTherapist(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type jwtClaims struct {
	jwt.RegisteredClaims
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	therapistRepo repos.TherapistRepo
	tokenRepo     repos.TherapistTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	therapistRepo repos.TherapistRepo,
	tokenRepo repos.TherapistTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		therapistRepo: therapistRepo,
		tokenRepo:     tokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterTherapist(ctx context.Context, therapist *types.Therapist) error {
	utils.NormalizeTherapistFields(ctx, therapist)
	if vErr := utils.RegisterInputValidation(ctx, as.therapistRepo, as.log, therapist); vErr != nil {
		return vErr
	}
	if hErr := utils.HashPassword(ctx, as.log, therapist); hErr != nil {
		return hErr
	}
	therapist.ID = uuid.New()
	if _, err := as.therapistRepo.Create(ctx, nil, []*types.Therapist{therapist}); err != nil {
		// The validation above races with concurrent signups; the unique
		// index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "Username or email already exists")
		}
		as.log.Error("Failed to create therapist", "error", err)
		return fmt.Errorf("create therapist: %w", err)
	}
	return nil
}

func (as *authService) LoginTherapist(ctx context.Context, username, password string) (string, string, error) {
	username = normalization.ParseUsername(username)
	password = normalization.ParseInputString(password)

	if vErr := utils.LoginInputValidation(ctx, as.log, username, password); vErr != nil {
		return "", "", vErr
	}

	therapists, err := as.therapistRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return "", "", fmt.Errorf("load therapist by username: %w", err)
	}
	if len(therapists) == 0 {
		return "", "", apperr.New(apperr.KindUser, "Invalid username or password")
	}

	therapist := therapists[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(therapist.Password), []byte(password)); hErr != nil {
		return "", "", apperr.New(apperr.KindUser, "Invalid username or password")
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One active token set per therapist; stale logins are replaced.
		if dErr := as.tokenRepo.DeleteByTherapistIDs(ctx, tx, []uuid.UUID{therapist.ID}); dErr != nil {
			return fmt.Errorf("clear existing tokens: %w", dErr)
		}
		tok, genErr := as.generateAccessToken(therapist)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		therapistToken := types.TherapistToken{
			ID:           uuid.New(),
			TherapistID:  therapist.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.tokenRepo.Create(ctx, tx, []*types.TherapistToken{&therapistToken}); cErr != nil {
			as.log.Warn("Create therapist token error", "error", cErr)
			return fmt.Errorf("create therapist token: %w", cErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshTherapist(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", apperr.New(apperr.KindUser, "No refresh token in request")
	}

	var accessToken string
	var newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.tokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			return fmt.Errorf("fetch refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return apperr.New(apperr.KindUser, "Unknown refresh token")
		}
		existing := foundTokens[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
				return fmt.Errorf("delete expired refresh token: %w", dErr)
			}
			return apperr.New(apperr.KindUser, "Refresh token expired")
		}
		therapists, tErr := as.therapistRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.TherapistID})
		if tErr != nil {
			return fmt.Errorf("load therapist for refresh: %w", tErr)
		}
		if len(therapists) == 0 {
			return apperr.New(apperr.KindUser, "No therapist found for refresh token")
		}
		therapist := therapists[0]
		tok, genErr := as.generateAccessToken(therapist)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newToken := types.TherapistToken{
			ID:           uuid.New(),
			TherapistID:  therapist.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.tokenRepo.Create(ctx, tx, []*types.TherapistToken{&newToken}); cErr != nil {
			return fmt.Errorf("create therapist token: %w", cErr)
		}
		if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
			return fmt.Errorf("remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutTherapist(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apperr.New(apperr.KindUser, "No access token in request")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.tokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("find therapist token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID}); dErr != nil {
			return fmt.Errorf("delete therapist token: %w", dErr)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(therapist *types.Therapist) (string, error) {
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   therapist.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*jwtClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	therapistID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid therapist id in token: %w", err)
	}
	foundTokens, ftErr := as.tokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		as.log.Warn("Error fetching therapist token by access token", "error", ftErr)
		return ctx, fmt.Errorf("fetch therapist token: %w", ftErr)
	}
	var refreshToken string
	if len(foundTokens) > 0 {
		refreshToken = foundTokens[0].RefreshToken
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		TherapistID:  therapistID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
