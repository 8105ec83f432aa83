package booking

import (
	"context"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

type SearchFilter struct {
	Room   string
	Status string
	Name   string
	Sector string
	Dates  []string
}

type AdminFilter struct {
	Room   string
	Status string
	Date   string
	Name   string
	Page   int
	Limit  int
}

type Repository interface {
	// -------- Booking --------
	Create(ctx context.Context, b *models.Booking) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)

	GetWithRelations(ctx context.Context, id string) (*models.Booking, error)

	Update(ctx context.Context, b *models.Booking) error

	// SaveSplit persiste o original reduzido e o clone recusado na mesma
	// transação (aprovação parcial).
	SaveSplit(ctx context.Context, original, clone *models.Booking) error

	// ListActiveByRoom retorna agendamentos da sala com status != rejected.
	ListActiveByRoom(ctx context.Context, room string) ([]models.Booking, error)

	ListActiveByRoomAndTipo(ctx context.Context, room, tipo string) ([]models.Booking, error)

	Search(ctx context.Context, f SearchFilter) ([]models.Booking, error)

	ListPaged(ctx context.Context, f AdminFilter) ([]models.Booking, int64, error)

	// -------- Bloqueios / capacidade --------
	BlocksForRoom(ctx context.Context, room string) ([]models.RoomBlock, error)

	LabCapacity(ctx context.Context, room string) (int, error)

	// -------- Notificação --------
	AdminEmailsForRoom(ctx context.Context, room string) ([]string, error)
}
