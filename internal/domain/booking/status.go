package booking

import (
	"time"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusEmAnalise Status = "em_analise"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Salas e tipos com regra própria.
const (
	RoomEscolaFazendaria = "escola_fazendaria"

	TipoSala       = "sala"
	TipoComputador = "computador"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transições
// ===============================

// Nenhum status é terminal no modelo de dados: aprovar ou recusar de novo
// apenas sobrescreve os campos de auditoria.

func Approve(b *models.Booking, actorEmail, local string, now time.Time) {
	b.Status = string(StatusApproved)
	b.ApprovedBy = &actorEmail
	b.ApprovedAt = &now
	b.RejectedBy = nil
	b.RejectedAt = nil
	b.RejectionReason = nil
	if local != "" {
		b.Local = local
	}
}

func Reject(b *models.Booking, actorEmail, reason string, now time.Time) {
	b.Status = string(StatusRejected)
	b.RejectedBy = &actorEmail
	b.RejectedAt = &now
	if reason != "" {
		b.RejectionReason = &reason
	} else {
		b.RejectionReason = nil
	}
	b.ApprovedBy = nil
	b.ApprovedAt = nil
}

func Analyze(b *models.Booking, note string) {
	b.Status = string(StatusEmAnalise)
	b.ObservacaoAdmin = note
	b.ApprovedBy = nil
	b.ApprovedAt = nil
	b.RejectedBy = nil
	b.RejectedAt = nil
	b.RejectionReason = nil
}
