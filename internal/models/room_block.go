package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomBlock é uma exclusão administrativa: nas datas e horários listados
// a sala não aceita novos agendamentos.
type RoomBlock struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Room     string `gorm:"size:50;not null;index" json:"room"`
	RoomName string `gorm:"size:100;not null" json:"room_name"`

	Dates []string `gorm:"serializer:json;not null" json:"dates"` // YYYY-MM-DD
	Times []string `gorm:"serializer:json;not null" json:"times"` // HH:MM

	// Tipos de reserva atingidos; vazio bloqueia todos.
	BookingTypes []string `gorm:"serializer:json" json:"booking_types"`

	Reason    string `gorm:"size:255;not null" json:"reason"`
	CreatedBy string `gorm:"size:255;not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *RoomBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// HasDate informa se o bloqueio atinge a data.
func (b *RoomBlock) HasDate(date string) bool {
	for _, d := range b.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// AppliesToTipo informa se o bloqueio atinge o tipo de reserva.
func (b *RoomBlock) AppliesToTipo(tipo string) bool {
	if len(b.BookingTypes) == 0 {
		return true
	}
	for _, t := range b.BookingTypes {
		if t == tipo {
			return true
		}
	}
	return false
}
