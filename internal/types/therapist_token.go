package types

import (
	"time"

	"github.com/google/uuid"
)

type TherapistToken struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TherapistID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"therapist_id"`
	Therapist    *Therapist `gorm:"constraint:OnDelete:CASCADE;foreignKey:TherapistID;references:ID" json:"-"`
	AccessToken  string     `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	RefreshToken string     `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time  `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (TherapistToken) TableName() string {
	return "therapist_token"
}
