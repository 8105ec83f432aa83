package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/roomlock"
)

// Dias úteis de referência (setembro de 2026).
const (
	seg = "2026-09-07"
	ter = "2026-09-08"
	qua = "2026-09-09"
	sab = "2026-09-05"
)

func newCreateUC(repo *stubRepo, notifier *stubNotifier, cache *stubCache) *CreateBooking {
	return NewCreateBooking(
		repo,
		roomlock.New(),
		notifier,
		cache,
		nil,
		nil,
		testRules(),
		zap.NewNop(),
	)
}

func baseInput() CreateInput {
	return CreateInput{
		Room:     "auditorio",
		RoomName: "Auditório",

		NomeCompleto:     "Maria Souza",
		SetorSolicitante: "Tributação",
		Telefone:         "21 99999-0000",
		Email:            "maria@seget.gov.br",

		Sessions: []models.Session{
			{Date: seg, Start: "10:00", End: "12:00"},
		},

		NumeroParticipantes: 10,
		Finalidade:          "Reunião de equipe",
	}
}

func existingBooking(id, room, tipo, date, start, end string, participants int) *models.Booking {
	return &models.Booking{
		ID:                  id,
		Room:                room,
		TipoReserva:         tipo,
		Status:              string(domain.StatusApproved),
		Sessions:            []models.Session{{Date: date, Start: start, End: end}},
		NumeroParticipantes: participants,
	}
}

// ===============================
// Caminho feliz
// ===============================

func TestCreateBookingOK(t *testing.T) {
	repo := newStubRepo()
	notifier := &stubNotifier{}
	cache := newStubCache()
	uc := newCreateUC(repo, notifier, cache)

	out, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	assert.NotEmpty(t, out.BookingID)
	assert.Equal(t, "/confirmar/"+out.BookingID, out.ConfirmationURL)

	require.Len(t, repo.created, 1)
	assert.Equal(t, string(domain.StatusPending), repo.created[0].Status)

	require.Len(t, notifier.created, 1)
	assert.Equal(t, 1, cache.invalidated)
}

// ===============================
// Validações genéricas
// ===============================

func TestCreateBookingWeekendRejected(t *testing.T) {
	uc := newCreateUC(newStubRepo(), &stubNotifier{}, newStubCache())

	in := baseInput()
	in.Sessions = []models.Session{{Date: sab, Start: "10:00", End: "12:00"}}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "weekend_not_allowed"))
}

func TestCreateBookingTooShortRejected(t *testing.T) {
	uc := newCreateUC(newStubRepo(), &stubNotifier{}, newStubCache())

	in := baseInput()
	in.Sessions = []models.Session{{Date: seg, Start: "10:00", End: "10:45"}}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "min_duration"))
}

// ===============================
// Conflito em sala exclusiva
// ===============================

func TestCreateBookingOverlapRejected(t *testing.T) {
	repo := newStubRepo()
	repo.add(existingBooking("b1", "auditorio", "", seg, "11:00", "13:00", 5))
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Empty(t, repo.created)
}

func TestCreateBookingAdjacentAccepted(t *testing.T) {
	// [10:00, 11:00) e [11:00, 12:00) não conflitam: meio-aberto.
	repo := newStubRepo()
	repo.add(existingBooking("b1", "auditorio", "", seg, "10:00", "11:00", 5))
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	in := baseInput()
	in.Sessions = []models.Session{{Date: seg, Start: "11:00", End: "12:00"}}

	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateBookingRejectedBookingDoesNotBlock(t *testing.T) {
	repo := newStubRepo()
	b := existingBooking("b1", "auditorio", "", seg, "10:00", "12:00", 5)
	b.Status = string(domain.StatusRejected)
	repo.add(b)
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	_, err := uc.Execute(context.Background(), baseInput())
	assert.NoError(t, err)
}

func TestCreateBookingOtherRoomDoesNotBlock(t *testing.T) {
	repo := newStubRepo()
	repo.add(existingBooking("b1", "sala_reuniao", "", seg, "10:00", "12:00", 5))
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	_, err := uc.Execute(context.Background(), baseInput())
	assert.NoError(t, err)
}

// ===============================
// Bloqueios administrativos
// ===============================

func TestCreateBookingBlockedRejected(t *testing.T) {
	repo := newStubRepo()
	repo.blocks = []models.RoomBlock{{
		Room:   "auditorio",
		Dates:  []string{seg},
		Times:  []string{"10:00"},
		Reason: "Manutenção",
	}}
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "room_blocked"))
}

// ===============================
// Escola Fazendária
// ===============================

func escolaInput(tipo string) CreateInput {
	in := baseInput()
	in.Room = domain.RoomEscolaFazendaria
	in.RoomName = "Escola Fazendária"
	in.TipoReserva = tipo
	in.Sessions = []models.Session{
		{Date: seg, Start: "09:00", End: "11:00"},
		{Date: ter, Start: "09:00", End: "11:00"},
		{Date: qua, Start: "09:00", End: "11:00"},
	}
	return in
}

func TestCreateEscolaRequiresThreeDates(t *testing.T) {
	uc := newCreateUC(newStubRepo(), &stubNotifier{}, newStubCache())

	in := escolaInput(domain.TipoSala)
	in.Sessions = in.Sessions[:2]

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "escola_requires_three_dates"))
}

func TestCreateEscolaSalaNoConflictCheck(t *testing.T) {
	// Duas reservas de sala da Escola no mesmo horário coexistem: o admin
	// resolve a alocação física na aprovação.
	repo := newStubRepo()
	existing := existingBooking("b1", domain.RoomEscolaFazendaria, domain.TipoSala, seg, "09:00", "11:00", 10)
	repo.add(existing)
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	_, err := uc.Execute(context.Background(), escolaInput(domain.TipoSala))
	assert.NoError(t, err)
}

func TestCreateEscolaComputadorCapacityExact(t *testing.T) {
	// 3 já em uso, capacidade 5: pedir 2 fecha a conta e passa.
	repo := newStubRepo()
	repo.capacity = 5
	repo.add(existingBooking("b1", domain.RoomEscolaFazendaria, domain.TipoComputador, seg, "09:00", "11:00", 3))
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	in := escolaInput(domain.TipoComputador)
	in.NumeroParticipantes = 2

	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateEscolaComputadorCapacityExceeded(t *testing.T) {
	repo := newStubRepo()
	repo.capacity = 5
	repo.add(existingBooking("b1", domain.RoomEscolaFazendaria, domain.TipoComputador, seg, "09:00", "11:00", 3))
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	in := escolaInput(domain.TipoComputador)
	in.NumeroParticipantes = 3

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "lab_capacity_exceeded"))
}

func TestCreateEscolaComputadorDisjointHoursDoNotSum(t *testing.T) {
	// Reserva existente de manhã não consome capacidade da tarde.
	repo := newStubRepo()
	repo.capacity = 5
	repo.add(existingBooking("b1", domain.RoomEscolaFazendaria, domain.TipoComputador, seg, "08:00", "10:00", 4))
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	in := escolaInput(domain.TipoComputador)
	in.Sessions = []models.Session{
		{Date: seg, Start: "14:00", End: "16:00"},
		{Date: ter, Start: "14:00", End: "16:00"},
		{Date: qua, Start: "14:00", End: "16:00"},
	}
	in.NumeroParticipantes = 4

	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateEscolaComputadorFallbackCapacity(t *testing.T) {
	// Sem configuração persistida, vale o default das regras.
	repo := newStubRepo()
	repo.capacity = 0
	uc := newCreateUC(repo, &stubNotifier{}, newStubCache())

	in := escolaInput(domain.TipoComputador)
	in.NumeroParticipantes = 6 // default é 5

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "lab_capacity_exceeded"))
}
