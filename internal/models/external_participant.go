package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExternalParticipant é um convidado sem cadastro de servidor.
type ExternalParticipant struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID string `gorm:"type:uuid;index;not null" json:"booking_id"`

	FullName string `gorm:"size:255;not null" json:"full_name"`
	Email    string `gorm:"size:255;not null" json:"email"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *ExternalParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
