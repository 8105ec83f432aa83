package booking

import (
	"context"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/audit"
	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
)

// ======================================================
// INPUT
// ======================================================

type AnalyzeInput struct {
	BookingID string
	Actor     Actor
	Note      string
}

// ======================================================
// USE CASE
// ======================================================

// AnalyzeBooking coloca o pedido "em análise": o solicitante é avisado
// de que a administração está avaliando, com a observação do admin.
type AnalyzeBooking struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewAnalyzeBooking(repo domain.Repository, notifier Notifier, auditDisp *audit.Dispatcher) *AnalyzeBooking {
	return &AnalyzeBooking{repo: repo, notifier: notifier, audit: auditDisp}
}

func (uc *AnalyzeBooking) Execute(ctx context.Context, in AnalyzeInput) error {

	b, err := uc.repo.GetWithRelations(ctx, in.BookingID)
	if err != nil {
		return err
	}

	if err := checkPermission(b, in.Actor); err != nil {
		return err
	}

	domain.Analyze(b, in.Note)

	if err := uc.repo.Update(ctx, b); err != nil {
		return err
	}

	uc.notifier.BookingUnderReview(b)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Room:       b.Room,
			ActorEmail: in.Actor.Email,
			Action:     "booking_under_review",
			Entity:     "booking",
			EntityID:   &b.ID,
		})
	}

	return nil
}
