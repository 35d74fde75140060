package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

func newMemoryService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	svc, err := New(log)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	sqlDB, err := svc.DB().DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A pooled second connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll returned error: %v", err)
	}
	return svc
}

func TestDuplicateKeyErrorIsTranslated(t *testing.T) {
	svc := newMemoryService(t)

	first := &types.Therapist{
		ID:       uuid.New(),
		Username: "sam",
		Email:    "sam@example.com",
		Password: "hash",
		Name:     "Sam",
	}
	if err := svc.DB().Create(first).Error; err != nil {
		t.Fatalf("create first therapist: %v", err)
	}

	second := &types.Therapist{
		ID:       uuid.New(),
		Username: "sam",
		Email:    "other@example.com",
		Password: "hash",
		Name:     "Sam Two",
	}
	err := svc.DB().Create(second).Error
	if err == nil {
		t.Fatal("duplicate username insert should fail")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error=%v, want gorm.ErrDuplicatedKey", err)
	}
}
