package booking

import (
	"context"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/audit"
	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/metrics"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ApprovePartialInput struct {
	BookingID      string
	Actor          Actor
	DatesToApprove []string
	Local          string
	Reason         string
}

// ======================================================
// USE CASE
// ======================================================

// ApprovePartialBooking aprova um subconjunto das datas do pedido. O
// registro original vira o lado aprovado; as datas restantes saem em um
// clone recusado, persistidos juntos na mesma transação. Subconjunto
// cheio degenera em aprovação total e subconjunto vazio em recusa, sem
// criar clone.
type ApprovePartialBooking struct {
	repo     domain.Repository
	notifier Notifier
	cache    OccupancyCache
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
}

func NewApprovePartialBooking(
	repo domain.Repository,
	notifier Notifier,
	cache OccupancyCache,
	auditDisp *audit.Dispatcher,
	m *metrics.Metrics,
) *ApprovePartialBooking {
	return &ApprovePartialBooking{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		audit:    auditDisp,
		metrics:  m,
	}
}

func (uc *ApprovePartialBooking) Execute(ctx context.Context, in ApprovePartialInput) error {

	b, err := uc.repo.GetWithRelations(ctx, in.BookingID)
	if err != nil {
		return err
	}

	if err := checkPermission(b, in.Actor); err != nil {
		return err
	}

	// Valida o subconjunto antes de tocar em qualquer registro.
	approvedSessions, rejectedSessions, err := domain.SplitSessions(b.Sessions, in.DatesToApprove)
	if err != nil {
		return err
	}

	allDates := b.Dates()
	now := timezone.Now()

	// Subconjunto cheio → aprovação total.
	if len(rejectedSessions) == 0 {
		domain.Approve(b, in.Actor.Email, in.Local, now)
		if err := uc.repo.Update(ctx, b); err != nil {
			return err
		}
		uc.finish(ctx, b.Room, allDates)
		uc.notifier.BookingApproved(b)
		uc.dispatchAudit(b.Room, in.Actor.Email, "booking_approved", b.ID)
		if uc.metrics != nil {
			uc.metrics.BookingsApproved.Inc()
		}
		return nil
	}

	// Subconjunto vazio → recusa total.
	if len(approvedSessions) == 0 {
		domain.Reject(b, in.Actor.Email, in.Reason, now)
		if err := uc.repo.Update(ctx, b); err != nil {
			return err
		}
		uc.finish(ctx, b.Room, allDates)
		uc.notifier.BookingRejected(b)
		uc.dispatchAudit(b.Room, in.Actor.Email, "booking_rejected", b.ID)
		if uc.metrics != nil {
			uc.metrics.BookingsRejected.Inc()
		}
		return nil
	}

	// Divisão de fato: original aprovado com as datas escolhidas, clone
	// recusado com o restante.
	clone := domain.DeriveRejectedClone(b, rejectedSessions, in.Actor.Email, in.Reason, now)

	b.Sessions = approvedSessions
	domain.Approve(b, in.Actor.Email, in.Local, now)

	if err := uc.repo.SaveSplit(ctx, b, clone); err != nil {
		return err
	}

	uc.finish(ctx, b.Room, allDates)

	uc.notifier.BookingApproved(b)
	uc.notifier.BookingRejected(clone)

	uc.dispatchAudit(b.Room, in.Actor.Email, "booking_partially_approved", b.ID)

	if uc.metrics != nil {
		uc.metrics.BookingsApproved.Inc()
		uc.metrics.BookingsRejected.Inc()
	}

	return nil
}

func (uc *ApprovePartialBooking) finish(ctx context.Context, room string, dates []string) {
	uc.cache.Invalidate(ctx, room, dates)
}

func (uc *ApprovePartialBooking) dispatchAudit(room, actorEmail, action, bookingID string) {
	if uc.audit == nil {
		return
	}
	uc.audit.Dispatch(audit.Event{
		Room:       room,
		ActorEmail: actorEmail,
		Action:     action,
		Entity:     "booking",
		EntityID:   &bookingID,
	})
}
