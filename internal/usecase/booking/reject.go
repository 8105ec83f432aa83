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

type RejectInput struct {
	BookingID string
	Actor     Actor
	Reason    string
}

// ======================================================
// USE CASE
// ======================================================

type RejectBooking struct {
	repo     domain.Repository
	notifier Notifier
	cache    OccupancyCache
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
}

func NewRejectBooking(
	repo domain.Repository,
	notifier Notifier,
	cache OccupancyCache,
	auditDisp *audit.Dispatcher,
	m *metrics.Metrics,
) *RejectBooking {
	return &RejectBooking{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		audit:    auditDisp,
		metrics:  m,
	}
}

func (uc *RejectBooking) Execute(ctx context.Context, in RejectInput) error {

	b, err := uc.repo.GetWithRelations(ctx, in.BookingID)
	if err != nil {
		return err
	}

	if err := checkPermission(b, in.Actor); err != nil {
		return err
	}

	domain.Reject(b, in.Actor.Email, in.Reason, timezone.Now())

	if err := uc.repo.Update(ctx, b); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, b.Room, b.Dates())
	uc.notifier.BookingRejected(b)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Room:       b.Room,
			ActorEmail: in.Actor.Email,
			Action:     "booking_rejected",
			Entity:     "booking",
			EntityID:   &b.ID,
		})
	}
	if uc.metrics != nil {
		uc.metrics.BookingsRejected.Inc()
	}

	return nil
}
