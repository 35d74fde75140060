package types

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TherapistID uuid.UUID  `gorm:"type:uuid;index;not null" json:"therapist_id"`
	Therapist   *Therapist `gorm:"constraint:OnDelete:CASCADE;foreignKey:TherapistID;references:ID" json:"-"`
	Name        string     `gorm:"not null;column:name" json:"name"`
	Age         *int       `gorm:"column:age" json:"age,omitempty"`
	Gender      string     `gorm:"column:gender" json:"gender,omitempty"`
	Contact     string     `gorm:"column:contact" json:"contact,omitempty"`
	Notes       string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patient"
}
