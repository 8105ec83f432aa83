package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// ===============================
// Aprovação parcial
// ===============================

// SplitSessions separa as sessions entre aprovadas e recusadas a partir
// do conjunto de datas aprovadas. Datas que não pertencem ao agendamento
// são erro de validação, nunca ajuste silencioso.
func SplitSessions(sessions []models.Session, datesToApprove []string) (approved, rejected []models.Session, err error) {
	known := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		known[s.Date] = true
	}

	wanted := make(map[string]bool, len(datesToApprove))
	for _, d := range datesToApprove {
		if !known[d] {
			return nil, nil, httperr.ErrBusiness(
				"invalid_partial_dates",
				"A data "+FormatDateBR(d)+" não pertence a este agendamento.",
			)
		}
		wanted[d] = true
	}

	for _, s := range sessions {
		if wanted[s.Date] {
			approved = append(approved, s)
		} else {
			rejected = append(rejected, s)
		}
	}

	return approved, rejected, nil
}

// DeriveRejectedClone constrói o registro recusado de uma aprovação
// parcial: cópia estrutural do original (solicitante, evento,
// equipamentos), mas só com as datas recusadas, identidade nova e
// auditoria de recusa própria.
func DeriveRejectedClone(orig *models.Booking, rejectedSessions []models.Session, actorEmail, reason string, now time.Time) *models.Booking {
	clone := &models.Booking{
		ID: uuid.NewString(),

		Room:        orig.Room,
		RoomName:    orig.RoomName,
		TipoReserva: orig.TipoReserva,

		NomeCompleto:     orig.NomeCompleto,
		SetorSolicitante: orig.SetorSolicitante,
		Responsavel:      orig.Responsavel,
		Telefone:         orig.Telefone,
		Email:            orig.Email,

		Sessions: rejectedSessions,

		NumeroParticipantes: orig.NumeroParticipantes,
		Participantes:       append([]string(nil), orig.Participantes...),
		Finalidade:          orig.Finalidade,
		Descricao:           orig.Descricao,
		Observacao:          orig.Observacao,

		Projetor:    orig.Projetor,
		SomProjetor: orig.SomProjetor,
		Internet:    orig.Internet,
		WifiTodos:   orig.WifiTodos,
		ConexaoCabo: orig.ConexaoCabo,

		SoftwareEspecifico: orig.SoftwareEspecifico,
		QualSoftware:       orig.QualSoftware,
		Papelaria:          orig.Papelaria,
		MaterialExterno:    orig.MaterialExterno,
		ApoioEquipe:        orig.ApoioEquipe,
	}

	Reject(clone, actorEmail, reason, now)

	return clone
}
