package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/usecase/attendance"
)

type AttendanceGormStore struct {
	db *gorm.DB
}

func NewAttendanceGormStore(db *gorm.DB) *AttendanceGormStore {
	return &AttendanceGormStore{db: db}
}

func (s *AttendanceGormStore) FindRecord(ctx context.Context, bookingID, date, email string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("booking_id = ? AND attendance_date = ? AND LOWER(email) = LOWER(?)", bookingID, date, email).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("Registro de presença não encontrado.")
		}
		return nil, err
	}
	return &record, nil
}

func (s *AttendanceGormStore) SaveRecord(ctx context.Context, r *models.AttendanceRecord) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *AttendanceGormStore) EmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("Servidor não encontrado.")
		}
		return nil, err
	}
	return &emp, nil
}

// Compile-time check
var _ attendance.Store = (*AttendanceGormStore)(nil)
