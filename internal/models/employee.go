package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee é o cadastro de servidores usado pelo seletor de participantes
// e pela verificação de e-mail na confirmação de presença.
type Employee struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FullName string `gorm:"size:255;not null" json:"full_name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Sector   string `gorm:"size:255" json:"sector"`
	Orgao    string `gorm:"size:100" json:"orgao"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
