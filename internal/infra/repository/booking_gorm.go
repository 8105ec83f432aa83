package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) Create(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("Agendamento não encontrado.")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetWithRelations(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("AttendanceRecords").
		Preload("ExternalParticipants").
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("Agendamento não encontrado.")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) Update(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) SaveSplit(ctx context.Context, original, clone *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(original).Error; err != nil {
			return err
		}
		return tx.Create(clone).Error
	})
}

func (r *BookingGormRepository) ListActiveByRoom(ctx context.Context, room string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("room = ? AND status <> ?", room, string(domain.StatusRejected)).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListActiveByRoomAndTipo(ctx context.Context, room, tipo string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("room = ? AND tipo_reserva = ? AND status <> ?", room, tipo, string(domain.StatusRejected)).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) Search(ctx context.Context, f domain.SearchFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.Room != "" {
		q = q.Where("room = ?", f.Room)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Name != "" {
		q = q.Where("nome_completo ILIKE ?", "%"+f.Name+"%")
	}
	if f.Sector != "" {
		q = q.Where("setor_solicitante ILIKE ?", "%"+f.Sector+"%")
	}

	// Sessions é JSON serializado; filtra por data no texto e refina em
	// memória para não depender de operador JSON específico.
	if len(f.Dates) > 0 {
		likes := make([]string, 0, len(f.Dates))
		args := make([]any, 0, len(f.Dates))
		for _, d := range f.Dates {
			likes = append(likes, "sessions LIKE ?")
			args = append(args, "%"+d+"%")
		}
		q = q.Where(strings.Join(likes, " OR "), args...)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	if len(f.Dates) > 0 {
		bookings = filterByDates(bookings, f.Dates)
	}

	return bookings, nil
}

func filterByDates(bookings []models.Booking, dates []string) []models.Booking {
	out := bookings[:0]
	for _, b := range bookings {
		for _, d := range dates {
			if _, ok := b.SessionOn(d); ok {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func (r *BookingGormRepository) ListPaged(ctx context.Context, f domain.AdminFilter) ([]models.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.Room != "" {
		q = q.Where("room = ?", f.Room)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("sessions LIKE ?", "%"+f.Date+"%")
	}
	if f.Name != "" {
		q = q.Where("nome_completo ILIKE ?", "%"+f.Name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// --------------------------------------------------
// Bloqueios / capacidade
// --------------------------------------------------

func (r *BookingGormRepository) BlocksForRoom(ctx context.Context, room string) ([]models.RoomBlock, error) {
	var blocks []models.RoomBlock
	if err := r.db.WithContext(ctx).
		Where("room = ?", room).
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BookingGormRepository) LabCapacity(ctx context.Context, room string) (int, error) {
	var setting models.RoomSetting
	err := r.db.WithContext(ctx).
		Where("room = ?", room).
		First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return setting.AvailableComputers, nil
}

// --------------------------------------------------
// Notificação
// --------------------------------------------------

func (r *BookingGormRepository) AdminEmailsForRoom(ctx context.Context, room string) ([]string, error) {
	var admins []models.AdminUser
	if err := r.db.WithContext(ctx).
		Where("room_access = ? OR is_super_admin = ?", room, true).
		Find(&admins).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(admins))
	emails := make([]string, 0, len(admins))
	for _, a := range admins {
		if !seen[a.Email] {
			seen[a.Email] = true
			emails = append(emails, a.Email)
		}
	}
	return emails, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
