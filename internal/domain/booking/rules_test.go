package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

// Dias úteis de referência (setembro de 2026: 7 é segunda, 8 terça, 9 quarta).
const (
	seg = "2026-09-07"
	ter = "2026-09-08"
	qua = "2026-09-09"
	sab = "2026-09-05"
)

func session(date, start, end string) models.Session {
	return models.Session{Date: date, Start: start, End: end}
}

func TestValidateSessionsOK(t *testing.T) {
	sessions := []models.Session{
		session(seg, "09:00", "11:00"),
		session(ter, "14:00", "15:00"),
	}

	intervals, err := ValidateSessions(sessions, timezone.Location())
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, Interval{Start: 540, End: 660}, intervals[0])
}

func TestValidateSessionsEmpty(t *testing.T) {
	_, err := ValidateSessions(nil, timezone.Location())
	assert.True(t, httperr.IsBusiness(err, "missing_dates"))
}

func TestValidateSessionsEndBeforeStart(t *testing.T) {
	_, err := ValidateSessions([]models.Session{session(seg, "11:00", "10:00")}, timezone.Location())
	assert.True(t, httperr.IsBusiness(err, "end_before_start"))
}

func TestValidateSessionsMinDuration(t *testing.T) {
	_, err := ValidateSessions([]models.Session{session(seg, "10:00", "10:30")}, timezone.Location())
	assert.True(t, httperr.IsBusiness(err, "min_duration"))

	// Exatamente 60 minutos passa.
	_, err = ValidateSessions([]models.Session{session(seg, "10:00", "11:00")}, timezone.Location())
	assert.NoError(t, err)
}

func TestValidateSessionsWeekend(t *testing.T) {
	_, err := ValidateSessions([]models.Session{session(sab, "10:00", "11:00")}, timezone.Location())
	assert.True(t, httperr.IsBusiness(err, "weekend_not_allowed"))
}

func TestValidateSessionsBadTime(t *testing.T) {
	_, err := ValidateSessions([]models.Session{session(seg, "10h", "11:00")}, timezone.Location())
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}

// ===============================
// Escola Fazendária
// ===============================

func escolaWindow(t *testing.T) EscolaWindow {
	t.Helper()
	w, err := NewEscolaWindow("08:00", "17:00")
	require.NoError(t, err)
	return w
}

func validateEscola(t *testing.T, tipo string, sessions ...models.Session) error {
	t.Helper()
	intervals, err := ValidateSessions(sessions, timezone.Location())
	require.NoError(t, err)
	return ValidateEscolaSessions(sessions, intervals, tipo, escolaWindow(t))
}

func TestEscolaRequiresThreeDates(t *testing.T) {
	err := validateEscola(t, TipoSala,
		session(seg, "09:00", "11:00"),
		session(ter, "09:00", "11:00"),
	)
	assert.True(t, httperr.IsBusiness(err, "escola_requires_three_dates"))
}

func TestEscolaSalaWindow(t *testing.T) {
	// Dentro da janela, inclusive nos limites: início 16:00 (= 17:00-1h)
	// e fim 17:00 são válidos.
	err := validateEscola(t, TipoSala,
		session(seg, "08:00", "09:00"),
		session(ter, "16:00", "17:00"),
		session(qua, "09:00", "12:00"),
	)
	assert.NoError(t, err)
}

func TestEscolaSalaStartTooLate(t *testing.T) {
	err := validateEscola(t, TipoSala,
		session(seg, "16:30", "17:30"),
		session(ter, "09:00", "11:00"),
		session(qua, "09:00", "11:00"),
	)
	assert.True(t, httperr.IsBusiness(err, "escola_invalid_start"))
}

func TestEscolaSalaStartTooEarly(t *testing.T) {
	err := validateEscola(t, TipoSala,
		session(seg, "07:00", "09:00"),
		session(ter, "09:00", "11:00"),
		session(qua, "09:00", "11:00"),
	)
	assert.True(t, httperr.IsBusiness(err, "escola_invalid_start"))
}

func TestEscolaSalaEndTooLate(t *testing.T) {
	err := validateEscola(t, TipoSala,
		session(seg, "15:00", "18:00"),
		session(ter, "09:00", "11:00"),
		session(qua, "09:00", "11:00"),
	)
	assert.True(t, httperr.IsBusiness(err, "escola_invalid_end"))
}

func TestEscolaComputadorIgnoresWindow(t *testing.T) {
	// Reserva de computador não tem restrição de janela.
	err := validateEscola(t, TipoComputador,
		session(seg, "07:00", "09:00"),
		session(ter, "09:00", "11:00"),
		session(qua, "09:00", "11:00"),
	)
	assert.NoError(t, err)
}

// ===============================
// Bloqueios
// ===============================

func TestCheckBlocks(t *testing.T) {
	sessions := []models.Session{session(seg, "09:00", "11:00")}
	intervals, err := ValidateSessions(sessions, timezone.Location())
	require.NoError(t, err)

	blocks := []models.RoomBlock{{
		Room:   "auditorio",
		Dates:  []string{seg},
		Times:  []string{"10:00"},
		Reason: "Manutenção",
	}}

	err = CheckBlocks(sessions, intervals, "", blocks)
	assert.True(t, httperr.IsBusiness(err, "room_blocked"))
}

func TestCheckBlocksOutsideInterval(t *testing.T) {
	sessions := []models.Session{session(seg, "09:00", "11:00")}
	intervals, err := ValidateSessions(sessions, timezone.Location())
	require.NoError(t, err)

	// 11:00 está fora do meio-aberto [09:00, 11:00).
	blocks := []models.RoomBlock{{
		Dates:  []string{seg},
		Times:  []string{"11:00"},
		Reason: "Manutenção",
	}}

	assert.NoError(t, CheckBlocks(sessions, intervals, "", blocks))
}

func TestCheckBlocksTipoFilter(t *testing.T) {
	sessions := []models.Session{session(seg, "09:00", "11:00")}
	intervals, err := ValidateSessions(sessions, timezone.Location())
	require.NoError(t, err)

	blocks := []models.RoomBlock{{
		Dates:        []string{seg},
		Times:        []string{"09:00"},
		BookingTypes: []string{TipoComputador},
		Reason:       "Atualização do laboratório",
	}}

	// Bloqueio restrito a computador não atinge reserva de sala.
	assert.NoError(t, CheckBlocks(sessions, intervals, TipoSala, blocks))
	assert.Error(t, CheckBlocks(sessions, intervals, TipoComputador, blocks))
}
