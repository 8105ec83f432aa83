package booking

import (
	"context"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// Actor é o administrador autenticado que executa a operação.
type Actor struct {
	Email        string
	IsSuperAdmin bool
	RoomAccess   string
}

// Notifier dispara os e-mails de cada transição. É fire-and-forget: o
// chamador nunca espera nem falha por causa de e-mail.
type Notifier interface {
	BookingCreated(b *models.Booking, adminEmails []string)
	BookingApproved(b *models.Booking)
	BookingRejected(b *models.Booking)
	BookingUnderReview(b *models.Booking)
}

// OccupancyCache é o cache da consulta de horários ocupados.
type OccupancyCache interface {
	Get(ctx context.Context, room, date, tipo string) ([]string, bool)
	Set(ctx context.Context, room, date, tipo string, hours []string)
	Invalidate(ctx context.Context, room string, dates []string)
}

// Rules são os parâmetros de regra configuráveis por deployment.
type Rules struct {
	EscolaWindow       domain.EscolaWindow
	DefaultLabCapacity int
}

func checkPermission(b *models.Booking, actor Actor) error {
	if actor.IsSuperAdmin {
		return nil
	}
	if b.Room == actor.RoomAccess {
		return nil
	}
	return httperr.ErrForbidden("Você não tem permissão para acessar este agendamento.")
}
