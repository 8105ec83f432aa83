package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/scheduler"
)

// SchedulerGormStore atende as consultas do scheduler de fundo.
type SchedulerGormStore struct {
	db *gorm.DB
}

func NewSchedulerGormStore(db *gorm.DB) *SchedulerGormStore {
	return &SchedulerGormStore{db: db}
}

func (s *SchedulerGormStore) ListApprovedOnDate(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Preload("ExternalParticipants").
		Where("status = ? AND sessions LIKE ?", string(domain.StatusApproved), "%"+date+"%").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *SchedulerGormStore) ListApproved(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusApproved)).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *SchedulerGormStore) Update(ctx context.Context, b *models.Booking) error {
	return s.db.WithContext(ctx).Save(b).Error
}

func (s *SchedulerGormStore) PendingAttendance(ctx context.Context, bookingID, date string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Where("booking_id = ? AND attendance_date = ? AND status = ?",
			bookingID, date, models.AttendancePending).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *SchedulerGormStore) UpdateAttendance(ctx context.Context, r *models.AttendanceRecord) error {
	return s.db.WithContext(ctx).Save(r).Error
}

// Compile-time check
var _ scheduler.Store = (*SchedulerGormStore)(nil)
