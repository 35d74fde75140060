package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/apperr"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/normalization"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

// PatientService owns the patient roster of a therapist. Every operation
// takes the therapist identity explicitly; a patient that exists but
// belongs to someone else is reported exactly like one that does not exist.
type PatientService interface {
	CreatePatient(ctx context.Context, therapistID uuid.UUID, input PatientInput) (*types.Patient, error)
	ListPatients(ctx context.Context, therapistID uuid.UUID) ([]*types.Patient, error)
	GetPatient(ctx context.Context, therapistID, patientID uuid.UUID) (*types.Patient, error)
	UpdatePatient(ctx context.Context, therapistID, patientID uuid.UUID, input PatientInput) (*types.Patient, error)
	DeletePatient(ctx context.Context, therapistID, patientID uuid.UUID) error
}

type PatientInput struct {
	Name    string `json:"name"`
	Age     *int   `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Contact string `json:"contact,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type patientService struct {
	db          *gorm.DB
	log         *logger.Logger
	patientRepo repos.PatientRepo
	noteRepo    repos.SessionNoteRepo
}

func NewPatientService(
	db *gorm.DB,
	baseLog *logger.Logger,
	patientRepo repos.PatientRepo,
	noteRepo repos.SessionNoteRepo,
) PatientService {
	serviceLog := baseLog.With("service", "PatientService")
	return &patientService{
		db:          db,
		log:         serviceLog,
		patientRepo: patientRepo,
		noteRepo:    noteRepo,
	}
}

func (ps *patientService) CreatePatient(ctx context.Context, therapistID uuid.UUID, input PatientInput) (*types.Patient, error) {
	name := normalization.ParseInputString(input.Name)
	if name == "" {
		return nil, apperr.New(apperr.KindUser, "Patient name is required")
	}

	now := time.Now()
	patient := &types.Patient{
		ID:          uuid.New(),
		TherapistID: therapistID,
		Name:        name,
		Age:         input.Age,
		Gender:      normalization.ParseInputString(input.Gender),
		Contact:     normalization.ParseInputString(input.Contact),
		Notes:       normalization.ParseInputString(input.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := ps.patientRepo.Create(ctx, nil, []*types.Patient{patient}); err != nil {
		ps.log.Error("CreatePatient failed", "error", err)
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return patient, nil
}

func (ps *patientService) ListPatients(ctx context.Context, therapistID uuid.UUID) ([]*types.Patient, error) {
	patients, err := ps.patientRepo.ListByTherapist(ctx, nil, therapistID)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (ps *patientService) GetPatient(ctx context.Context, therapistID, patientID uuid.UUID) (*types.Patient, error) {
	patient, err := ps.patientRepo.GetByID(ctx, nil, patientID, therapistID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if patient == nil {
		return nil, apperr.New(apperr.KindNotFound, "Patient not found")
	}
	return patient, nil
}

func (ps *patientService) UpdatePatient(ctx context.Context, therapistID, patientID uuid.UUID, input PatientInput) (*types.Patient, error) {
	name := normalization.ParseInputString(input.Name)
	if name == "" {
		return nil, apperr.New(apperr.KindUser, "Patient name is required")
	}

	patient := &types.Patient{
		ID:          patientID,
		TherapistID: therapistID,
		Name:        name,
		Age:         input.Age,
		Gender:      normalization.ParseInputString(input.Gender),
		Contact:     normalization.ParseInputString(input.Contact),
		Notes:       normalization.ParseInputString(input.Notes),
	}
	updated, err := ps.patientRepo.Update(ctx, nil, patient)
	if err != nil {
		ps.log.Error("UpdatePatient failed", "error", err, "patient_id", patientID)
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if !updated {
		return nil, apperr.New(apperr.KindNotFound, "Patient not found")
	}
	return ps.GetPatient(ctx, therapistID, patientID)
}

// DeletePatient removes the patient and every session note that belongs to
// them, notes first, in one transaction.
func (ps *patientService) DeletePatient(ctx context.Context, therapistID, patientID uuid.UUID) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.noteRepo.DeleteByPatient(ctx, tx, patientID, therapistID); err != nil {
			return fmt.Errorf("delete patient notes: %w", err)
		}
		deleted, err := ps.patientRepo.Delete(ctx, tx, patientID, therapistID)
		if err != nil {
			return fmt.Errorf("delete patient: %w", err)
		}
		if !deleted {
			return apperr.New(apperr.KindNotFound, "Patient not found")
		}
		return nil
	})
}
