package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mindscribe/mindscribe-backend/internal/emotion"
)

// SessionNote is one session note plus its emotion analysis. Notes are
// created once by the annotation pipeline and never mutated; they are
// deleted only as part of a patient cascade.
type SessionNote struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID      `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient     *Patient       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PatientID;references:ID" json:"-"`
	TherapistID uuid.UUID      `gorm:"type:uuid;index;not null" json:"therapist_id"`
	NoteText    string         `gorm:"not null;column:note_text" json:"note_text"`
	Emotions    datatypes.JSON `gorm:"not null;column:emotions" json:"emotions"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
}

func (SessionNote) TableName() string {
	return "session_note"
}

// Scores decodes the persisted emotion column.
func (n *SessionNote) Scores() (emotion.ScoreMap, error) {
	var scores emotion.ScoreMap
	if err := json.Unmarshal(n.Emotions, &scores); err != nil {
		return nil, fmt.Errorf("decode emotion scores for note %s: %w", n.ID, err)
	}
	return scores, nil
}

// SetScores encodes the score map into the persisted emotion column.
func (n *SessionNote) SetScores(scores emotion.ScoreMap) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode emotion scores: %w", err)
	}
	n.Emotions = datatypes.JSON(raw)
	return nil
}
