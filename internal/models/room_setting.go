package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomSetting guarda a capacidade configurável de salas com recurso
// compartilhado (hoje só o laboratório da Escola Fazendária usa).
type RoomSetting struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Room               string `gorm:"size:100;uniqueIndex;not null" json:"room"`
	AvailableComputers int    `json:"available_computers"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s *RoomSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
