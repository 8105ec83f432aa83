package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendancePending     = "Pendente"
	AttendancePresent     = "Presente"
	AttendanceUnconfirmed = "Não Confirmado"
)

// AttendanceRecord registra a presença de um participante em um dia
// específico de um agendamento.
type AttendanceRecord struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID string `gorm:"type:uuid;index;not null" json:"booking_id"`

	FullName string `gorm:"size:255" json:"full_name"`
	Email    string `gorm:"size:255;not null" json:"email"`

	AttendanceDate string `gorm:"size:10;index" json:"attendance_date"` // YYYY-MM-DD
	Status         string `gorm:"size:30;default:'Pendente'" json:"status"`

	IsVisitor   bool       `gorm:"default:false" json:"is_visitor"`
	ConfirmedAt *time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
