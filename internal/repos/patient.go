package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

// PatientRepo scopes every read and write by therapist id so one
// therapist's patients can never leak into another's queries.
type PatientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, patients []*types.Patient) ([]*types.Patient, error)
	GetByID(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) (*types.Patient, error)
	ListByTherapist(ctx context.Context, tx *gorm.DB, therapistID uuid.UUID) ([]*types.Patient, error)
	Update(ctx context.Context, tx *gorm.DB, patient *types.Patient) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) (bool, error)
}

type patientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatientRepo(db *gorm.DB, baseLog *logger.Logger) PatientRepo {
	repoLog := baseLog.With("repo", "PatientRepo")
	return &patientRepo{db: db, log: repoLog}
}

func (pr *patientRepo) Create(ctx context.Context, tx *gorm.DB, patients []*types.Patient) ([]*types.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(patients) == 0 {
		return []*types.Patient{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (pr *patientRepo) GetByID(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) (*types.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Patient
	if err := transaction.WithContext(ctx).
		Where("id = ? AND therapist_id = ?", patientID, therapistID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (pr *patientRepo) ListByTherapist(ctx context.Context, tx *gorm.DB, therapistID uuid.UUID) ([]*types.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Patient
	if err := transaction.WithContext(ctx).
		Where("therapist_id = ?", therapistID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *patientRepo) Update(ctx context.Context, tx *gorm.DB, patient *types.Patient) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Patient{}).
		Where("id = ? AND therapist_id = ?", patient.ID, patient.TherapistID).
		Updates(map[string]interface{}{
			"name":    patient.Name,
			"age":     patient.Age,
			"gender":  patient.Gender,
			"contact": patient.Contact,
			"notes":   patient.Notes,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (pr *patientRepo) Delete(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND therapist_id = ?", patientID, therapistID).
		Delete(&types.Patient{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
