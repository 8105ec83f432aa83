package booking

import (
	"context"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// GetPublicBooking retorna o agendamento pela página pública de
// confirmação, com os participantes externos carregados.
type GetPublicBooking struct {
	repo domain.Repository
}

func NewGetPublicBooking(repo domain.Repository) *GetPublicBooking {
	return &GetPublicBooking{repo: repo}
}

func (uc *GetPublicBooking) Execute(ctx context.Context, id string) (*models.Booking, error) {
	return uc.repo.GetWithRelations(ctx, id)
}

// GetAdminBooking retorna o agendamento para o painel administrativo,
// checando o acesso do admin à sala.
type GetAdminBooking struct {
	repo domain.Repository
}

func NewGetAdminBooking(repo domain.Repository) *GetAdminBooking {
	return &GetAdminBooking{repo: repo}
}

func (uc *GetAdminBooking) Execute(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	b, err := uc.repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPermission(b, actor); err != nil {
		return nil, err
	}
	return b, nil
}

// ListAdminBookings lista paginado para o painel, restrito à sala do
// admin quando ele não é super admin.
type ListAdminBookings struct {
	repo domain.Repository
}

func NewListAdminBookings(repo domain.Repository) *ListAdminBookings {
	return &ListAdminBookings{repo: repo}
}

type ListAdminInput struct {
	Actor  Actor
	Room   string
	Status string
	Date   string
	Name   string
	Page   int
	Limit  int
}

type ListAdminOutput struct {
	Bookings []models.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

func (uc *ListAdminBookings) Execute(ctx context.Context, in ListAdminInput) (*ListAdminOutput, error) {
	room := in.Room
	if !in.Actor.IsSuperAdmin {
		room = in.Actor.RoomAccess
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	bookings, total, err := uc.repo.ListPaged(ctx, domain.AdminFilter{
		Room:   room,
		Status: in.Status,
		Date:   in.Date,
		Name:   in.Name,
		Page:   in.Page,
		Limit:  in.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListAdminOutput{
		Bookings: bookings,
		Total:    total,
		Page:     in.Page,
		Limit:    in.Limit,
	}, nil
}
