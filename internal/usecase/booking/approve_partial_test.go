package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

func superAdmin() Actor {
	return Actor{Email: "admin@seget.gov.br", IsSuperAdmin: true}
}

func pendingEscolaBooking() *models.Booking {
	return &models.Booking{
		ID:          "orig-id",
		Room:        domain.RoomEscolaFazendaria,
		RoomName:    "Escola Fazendária",
		TipoReserva: domain.TipoSala,
		Status:      string(domain.StatusPending),

		NomeCompleto: "Maria Souza",
		Email:        "maria@seget.gov.br",

		Sessions: []models.Session{
			{Date: seg, Start: "09:00", End: "11:00"},
			{Date: ter, Start: "09:00", End: "11:00"},
			{Date: qua, Start: "09:00", End: "11:00"},
		},

		NumeroParticipantes: 10,
		Finalidade:          "Curso",
	}
}

func newPartialUC(repo *stubRepo, notifier *stubNotifier, cache *stubCache) *ApprovePartialBooking {
	return NewApprovePartialBooking(repo, notifier, cache, nil, nil)
}

func TestApprovePartialProperSubset(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	notifier := &stubNotifier{}
	cache := newStubCache()
	uc := newPartialUC(repo, notifier, cache)

	err := uc.Execute(context.Background(), ApprovePartialInput{
		BookingID:      "orig-id",
		Actor:          superAdmin(),
		DatesToApprove: []string{seg, qua},
		Local:          "Sala 3",
		Reason:         "Dia indisponível",
	})
	require.NoError(t, err)

	// Original aprovado só com as datas escolhidas.
	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusApproved), orig.Status)
	assert.Equal(t, []string{seg, qua}, orig.Dates())
	assert.Equal(t, "Sala 3", orig.Local)

	// Clone recusado com o restante, persistido na mesma transação.
	assert.Equal(t, 1, repo.splitCalls)
	require.NotNil(t, repo.splitClone)
	assert.Equal(t, string(domain.StatusRejected), repo.splitClone.Status)
	assert.Equal(t, []string{ter}, repo.splitClone.Dates())
	assert.Equal(t, orig.Email, repo.splitClone.Email)

	// Nenhuma session se perdeu na divisão.
	assert.Len(t, append(orig.Sessions, repo.splitClone.Sessions...), 3)

	// Os dois lados notificam.
	assert.Len(t, notifier.approved, 1)
	assert.Len(t, notifier.rejected, 1)
	assert.Equal(t, 1, cache.invalidated)
}

func TestApprovePartialFullSubsetIsApprove(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	notifier := &stubNotifier{}
	uc := newPartialUC(repo, notifier, newStubCache())

	err := uc.Execute(context.Background(), ApprovePartialInput{
		BookingID:      "orig-id",
		Actor:          superAdmin(),
		DatesToApprove: []string{seg, ter, qua},
	})
	require.NoError(t, err)

	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusApproved), orig.Status)
	assert.Len(t, orig.Sessions, 3)

	// Sem clone.
	assert.Equal(t, 0, repo.splitCalls)
	assert.Len(t, notifier.approved, 1)
	assert.Empty(t, notifier.rejected)
}

func TestApprovePartialEmptySubsetIsReject(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	notifier := &stubNotifier{}
	uc := newPartialUC(repo, notifier, newStubCache())

	err := uc.Execute(context.Background(), ApprovePartialInput{
		BookingID:      "orig-id",
		Actor:          superAdmin(),
		DatesToApprove: []string{},
		Reason:         "Semana bloqueada",
	})
	require.NoError(t, err)

	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusRejected), orig.Status)
	assert.Len(t, orig.Sessions, 3)

	assert.Equal(t, 0, repo.splitCalls)
	assert.Empty(t, notifier.approved)
	assert.Len(t, notifier.rejected, 1)
}

func TestApprovePartialUnknownDateFailsBeforeMutation(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	uc := newPartialUC(repo, &stubNotifier{}, newStubCache())

	err := uc.Execute(context.Background(), ApprovePartialInput{
		BookingID:      "orig-id",
		Actor:          superAdmin(),
		DatesToApprove: []string{"2026-12-25"},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_partial_dates"))

	// Nada mudou.
	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusPending), orig.Status)
	assert.Len(t, orig.Sessions, 3)
	assert.Empty(t, repo.updated)
	assert.Equal(t, 0, repo.splitCalls)
}

func TestApprovePartialPermissionDenied(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	uc := newPartialUC(repo, &stubNotifier{}, newStubCache())

	err := uc.Execute(context.Background(), ApprovePartialInput{
		BookingID:      "orig-id",
		Actor:          Actor{Email: "outro@seget.gov.br", RoomAccess: "auditorio"},
		DatesToApprove: []string{seg},
	})
	assert.True(t, httperr.IsForbidden(err))
}

// ===============================
// Approve / Reject / Analyze
// ===============================

func TestApproveBooking(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	notifier := &stubNotifier{}
	cache := newStubCache()
	uc := NewApproveBooking(repo, notifier, cache, nil, nil)

	err := uc.Execute(context.Background(), ApproveInput{
		BookingID: "orig-id",
		Actor:     superAdmin(),
		Local:     "Sala 1",
	})
	require.NoError(t, err)

	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusApproved), orig.Status)
	assert.Equal(t, "Sala 1", orig.Local)
	assert.Len(t, notifier.approved, 1)
	assert.Equal(t, 1, cache.invalidated)
}

func TestApproveBookingRoomAdminAllowed(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	uc := NewApproveBooking(repo, &stubNotifier{}, newStubCache(), nil, nil)

	err := uc.Execute(context.Background(), ApproveInput{
		BookingID: "orig-id",
		Actor: Actor{
			Email:      "escola@seget.gov.br",
			RoomAccess: domain.RoomEscolaFazendaria,
		},
	})
	assert.NoError(t, err)
}

func TestRejectBooking(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	notifier := &stubNotifier{}
	uc := NewRejectBooking(repo, notifier, newStubCache(), nil, nil)

	err := uc.Execute(context.Background(), RejectInput{
		BookingID: "orig-id",
		Actor:     superAdmin(),
		Reason:    "Sala em obras",
	})
	require.NoError(t, err)

	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusRejected), orig.Status)
	require.NotNil(t, orig.RejectionReason)
	assert.Equal(t, "Sala em obras", *orig.RejectionReason)
	assert.Len(t, notifier.rejected, 1)
}

func TestAnalyzeBooking(t *testing.T) {
	repo := newStubRepo()
	repo.add(pendingEscolaBooking())
	notifier := &stubNotifier{}
	uc := NewAnalyzeBooking(repo, notifier, nil)

	err := uc.Execute(context.Background(), AnalyzeInput{
		BookingID: "orig-id",
		Actor:     superAdmin(),
		Note:      "Confirmando disponibilidade do palestrante",
	})
	require.NoError(t, err)

	orig := repo.bookings["orig-id"]
	assert.Equal(t, string(domain.StatusEmAnalise), orig.Status)
	assert.Equal(t, "Confirmando disponibilidade do palestrante", orig.ObservacaoAdmin)
	assert.Len(t, notifier.reviewed, 1)
}

func TestApproveNotFound(t *testing.T) {
	uc := NewApproveBooking(newStubRepo(), &stubNotifier{}, newStubCache(), nil, nil)

	err := uc.Execute(context.Background(), ApproveInput{
		BookingID: "missing",
		Actor:     superAdmin(),
	})
	assert.True(t, httperr.IsNotFound(err))
}
