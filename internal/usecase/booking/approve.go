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

type ApproveInput struct {
	BookingID string
	Actor     Actor

	// Local físico definido pelo admin na aprovação (Escola Fazendária).
	Local string
}

// ======================================================
// USE CASE
// ======================================================

type ApproveBooking struct {
	repo     domain.Repository
	notifier Notifier
	cache    OccupancyCache
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
}

func NewApproveBooking(
	repo domain.Repository,
	notifier Notifier,
	cache OccupancyCache,
	auditDisp *audit.Dispatcher,
	m *metrics.Metrics,
) *ApproveBooking {
	return &ApproveBooking{
		repo:     repo,
		notifier: notifier,
		cache:    cache,
		audit:    auditDisp,
		metrics:  m,
	}
}

func (uc *ApproveBooking) Execute(ctx context.Context, in ApproveInput) error {

	b, err := uc.repo.GetWithRelations(ctx, in.BookingID)
	if err != nil {
		return err
	}

	if err := checkPermission(b, in.Actor); err != nil {
		return err
	}

	domain.Approve(b, in.Actor.Email, in.Local, timezone.Now())

	if err := uc.repo.Update(ctx, b); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, b.Room, b.Dates())
	uc.notifier.BookingApproved(b)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Room:       b.Room,
			ActorEmail: in.Actor.Email,
			Action:     "booking_approved",
			Entity:     "booking",
			EntityID:   &b.ID,
		})
	}
	if uc.metrics != nil {
		uc.metrics.BookingsApproved.Inc()
	}

	return nil
}
