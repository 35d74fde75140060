package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindscribe/mindscribe-backend/internal/emotion"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeTherapistRepo struct {
	therapists []*types.Therapist
	createErr  error
}

var _ repos.TherapistRepo = (*fakeTherapistRepo)(nil)

func (f *fakeTherapistRepo) Create(ctx context.Context, tx *gorm.DB, therapists []*types.Therapist) ([]*types.Therapist, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.therapists = append(f.therapists, therapists...)
	return therapists, nil
}

func (f *fakeTherapistRepo) GetByIDs(ctx context.Context, tx *gorm.DB, therapistIDs []uuid.UUID) ([]*types.Therapist, error) {
	var results []*types.Therapist
	for _, th := range f.therapists {
		for _, id := range therapistIDs {
			if th.ID == id {
				results = append(results, th)
			}
		}
	}
	return results, nil
}

func (f *fakeTherapistRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.Therapist, error) {
	var results []*types.Therapist
	for _, th := range f.therapists {
		for _, username := range usernames {
			if th.Username == username {
				results = append(results, th)
			}
		}
	}
	return results, nil
}

func (f *fakeTherapistRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	for _, th := range f.therapists {
		if th.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTherapistRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	for _, th := range f.therapists {
		if th.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*types.Patient
}

func newFakePatientRepo(patients ...*types.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: map[uuid.UUID]*types.Patient{}}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

var _ repos.PatientRepo = (*fakePatientRepo)(nil)

func (f *fakePatientRepo) Create(ctx context.Context, tx *gorm.DB, patients []*types.Patient) ([]*types.Patient, error) {
	for _, p := range patients {
		f.patients[p.ID] = p
	}
	return patients, nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) (*types.Patient, error) {
	p, ok := f.patients[patientID]
	if !ok || p.TherapistID != therapistID {
		return nil, nil
	}
	return p, nil
}

func (f *fakePatientRepo) ListByTherapist(ctx context.Context, tx *gorm.DB, therapistID uuid.UUID) ([]*types.Patient, error) {
	var results []*types.Patient
	for _, p := range f.patients {
		if p.TherapistID == therapistID {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, tx *gorm.DB, patient *types.Patient) (bool, error) {
	existing, ok := f.patients[patient.ID]
	if !ok || existing.TherapistID != patient.TherapistID {
		return false, nil
	}
	existing.Name = patient.Name
	existing.Age = patient.Age
	existing.Gender = patient.Gender
	existing.Contact = patient.Contact
	existing.Notes = patient.Notes
	return true, nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) (bool, error) {
	p, ok := f.patients[patientID]
	if !ok || p.TherapistID != therapistID {
		return false, nil
	}
	delete(f.patients, patientID)
	return true, nil
}

type fakeSessionNoteRepo struct {
	notes []*types.SessionNote
}

var _ repos.SessionNoteRepo = (*fakeSessionNoteRepo)(nil)

func (f *fakeSessionNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.SessionNote) ([]*types.SessionNote, error) {
	f.notes = append(f.notes, notes...)
	return notes, nil
}

func (f *fakeSessionNoteRepo) ListByPatient(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) ([]*types.SessionNote, error) {
	var results []*types.SessionNote
	for _, n := range f.notes {
		if n.PatientID == patientID && n.TherapistID == therapistID {
			results = append(results, n)
		}
	}
	// Timestamp descending, id descending on ties, like the real repo.
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID.String() > results[j].ID.String()
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (f *fakeSessionNoteRepo) DeleteByPatient(ctx context.Context, tx *gorm.DB, patientID, therapistID uuid.UUID) error {
	kept := f.notes[:0]
	for _, n := range f.notes {
		if n.PatientID == patientID && n.TherapistID == therapistID {
			continue
		}
		kept = append(kept, n)
	}
	f.notes = kept
	return nil
}

type fakeScorer struct {
	scores emotion.ScoreMap
}

func (f *fakeScorer) Score(ctx context.Context, text string) emotion.ScoreMap {
	if len(f.scores) == 0 {
		return emotion.ScoreMap{}
	}
	out := make(emotion.ScoreMap, len(f.scores))
	for label, score := range f.scores {
		out[label] = score
	}
	return out
}

type fakeClassifier struct {
	calls   int
	results []LabelScore
	err     error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}
