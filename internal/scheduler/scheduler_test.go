package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/mailer"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// ===============================
// Stubs
// ===============================

type stubStore struct {
	approved []models.Booking
	pending  map[string][]models.AttendanceRecord

	updatedBookings []models.Booking
	updatedRecords  []models.AttendanceRecord
}

func (s *stubStore) ListApprovedOnDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.approved, nil
}

func (s *stubStore) ListApproved(ctx context.Context) ([]models.Booking, error) {
	return s.approved, nil
}

func (s *stubStore) Update(ctx context.Context, b *models.Booking) error {
	s.updatedBookings = append(s.updatedBookings, *b)
	return nil
}

func (s *stubStore) PendingAttendance(ctx context.Context, bookingID, date string) ([]models.AttendanceRecord, error) {
	return s.pending[bookingID+"|"+date], nil
}

func (s *stubStore) UpdateAttendance(ctx context.Context, r *models.AttendanceRecord) error {
	s.updatedRecords = append(s.updatedRecords, *r)
	return nil
}

type stubMail struct {
	sent []string
	err  error
}

func (m *stubMail) SendAttendanceConfirmation(b *models.Booking, to, name, date string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestScheduler(store Store, mail MailSender) *Scheduler {
	s := New(store, mail, zap.NewNop())
	s.recipientDelay = 0
	return s
}

// ===============================
// Envio por agendamento
// ===============================

func TestSendForBookingReachesEveryone(t *testing.T) {
	mail := &stubMail{}
	s := newTestScheduler(&stubStore{}, mail)

	b := &models.Booking{
		Email:         "maria@seget.gov.br",
		NomeCompleto:  "Maria Souza",
		Participantes: []string{"joao@seget.gov.br", "", "maria@seget.gov.br"},
		ExternalParticipants: []models.ExternalParticipant{
			{FullName: "Visitante", Email: "visitante@example.com"},
		},
	}

	err := s.sendForBooking(b, "2026-09-07")
	require.NoError(t, err)

	// Solicitante primeiro; vazio e duplicata do solicitante pulados.
	assert.Equal(t, []string{
		"maria@seget.gov.br",
		"joao@seget.gov.br",
		"visitante@example.com",
	}, mail.sent)
}

func TestAlreadySent(t *testing.T) {
	b := &models.Booking{ConfirmationEmailsSent: []string{"2026-09-07"}}

	assert.True(t, alreadySent(b, "2026-09-07"))
	assert.False(t, alreadySent(b, "2026-09-08"))
}

// ===============================
// Pausa por limite diário
// ===============================

func TestPauseBlocksDispatch(t *testing.T) {
	s := newTestScheduler(&stubStore{}, &stubMail{})

	assert.False(t, s.isPaused())
	s.pause()
	assert.True(t, s.isPaused())
}

func TestPauseExpires(t *testing.T) {
	s := newTestScheduler(&stubStore{}, &stubMail{})
	s.cooldown = -time.Minute // expira no passado

	s.pause()
	assert.False(t, s.isPaused())
}

func TestDailyLimitPausesScheduler(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	store := &stubStore{
		approved: []models.Booking{{
			ID:     "b1",
			Email:  "maria@seget.gov.br",
			Status: "approved",
			Sessions: []models.Session{
				{Date: today, Start: "00:00", End: "23:59"},
			},
		}},
	}
	mail := &stubMail{err: mailer.ErrDailyLimit}
	s := newTestScheduler(store, mail)

	s.dispatchAttendanceMails(context.Background())

	assert.True(t, s.isPaused())
	// Sem envio, o agendamento não é marcado como notificado.
	assert.Empty(t, store.updatedBookings)
}

func TestDispatchMarksDateAsSent(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	store := &stubStore{
		approved: []models.Booking{{
			ID:     "b1",
			Email:  "maria@seget.gov.br",
			Status: "approved",
			Sessions: []models.Session{
				{Date: today, Start: "00:00", End: "23:59"},
			},
		}},
	}
	mail := &stubMail{}
	s := newTestScheduler(store, mail)

	s.dispatchAttendanceMails(context.Background())

	require.Len(t, store.updatedBookings, 1)
	assert.Contains(t, store.updatedBookings[0].ConfirmationEmailsSent, today)
	assert.NotEmpty(t, mail.sent)

	// Segunda rodada no mesmo dia não reenvia.
	store.approved = store.updatedBookings
	mail.sent = nil
	s.dispatchAttendanceMails(context.Background())
	assert.Empty(t, mail.sent)
}

// ===============================
// Reconciliação
// ===============================

func TestReconcileMarksExpiredPending(t *testing.T) {
	store := &stubStore{
		approved: []models.Booking{{
			ID:     "b1",
			Status: "approved",
			Sessions: []models.Session{
				{Date: "2020-01-02", Start: "09:00", End: "11:00"},
			},
		}},
		pending: map[string][]models.AttendanceRecord{
			"b1|2020-01-02": {
				{ID: "r1", BookingID: "b1", AttendanceDate: "2020-01-02", Status: models.AttendancePending},
			},
		},
	}
	s := newTestScheduler(store, &stubMail{})

	s.reconcileUnconfirmed(context.Background())

	require.Len(t, store.updatedRecords, 1)
	assert.Equal(t, models.AttendanceUnconfirmed, store.updatedRecords[0].Status)
}

func TestReconcileSkipsFutureSessions(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	store := &stubStore{
		approved: []models.Booking{{
			ID:     "b1",
			Status: "approved",
			Sessions: []models.Session{
				{Date: future, Start: "09:00", End: "11:00"},
			},
		}},
		pending: map[string][]models.AttendanceRecord{
			"b1|" + future: {
				{ID: "r1", BookingID: "b1", AttendanceDate: future, Status: models.AttendancePending},
			},
		},
	}
	s := newTestScheduler(store, &stubMail{})

	s.reconcileUnconfirmed(context.Background())

	assert.Empty(t, store.updatedRecords)
}
