package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/audit"
	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/metrics"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/roomlock"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Room        string
	RoomName    string
	TipoReserva string

	NomeCompleto     string
	SetorSolicitante string
	Responsavel      string
	Telefone         string
	Email            string

	Sessions []models.Session

	NumeroParticipantes int
	Participantes       []string
	Finalidade          string
	Descricao           string
	Observacao          string

	Projetor    string
	SomProjetor string
	Internet    string
	WifiTodos   string
	ConexaoCabo string

	SoftwareEspecifico string
	QualSoftware       string
	Papelaria          string
	MaterialExterno    string
	ApoioEquipe        string

	ExternalParticipants []models.ExternalParticipant
}

type CreateOutput struct {
	BookingID       string
	ConfirmationURL string
	Participants    []string
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking valida a disponibilidade e persiste o pedido. A validação
// só lê; a escrita acontece depois do ACCEPT, com a sala serializada pelo
// lock para fechar a janela entre checagem e gravação.
type CreateBooking struct {
	repo     domain.Repository
	locks    *roomlock.Keyed
	notifier Notifier
	cache    OccupancyCache
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	rules    Rules
	logger   *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	locks *roomlock.Keyed,
	notifier Notifier,
	cache OccupancyCache,
	auditDisp *audit.Dispatcher,
	m *metrics.Metrics,
	rules Rules,
	logger *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		locks:    locks,
		notifier: notifier,
		cache:    cache,
		audit:    auditDisp,
		metrics:  m,
		rules:    rules,
		logger:   logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(ctx context.Context, in CreateInput) (*CreateOutput, error) {

	loc := timezone.Location()

	// --------------------------------------------------
	// 1. Horários, duração mínima e finais de semana
	// --------------------------------------------------
	intervals, err := domain.ValidateSessions(in.Sessions, loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Regras específicas da Escola Fazendária
	// --------------------------------------------------
	if in.Room == domain.RoomEscolaFazendaria {
		if err := domain.ValidateEscolaSessions(in.Sessions, intervals, in.TipoReserva, uc.rules.EscolaWindow); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3. Checagem contra estado persistido, serializada por sala
	// --------------------------------------------------
	uc.locks.Lock(in.Room)
	defer uc.locks.Unlock(in.Room)

	blocks, err := uc.repo.BlocksForRoom(ctx, in.Room)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckBlocks(in.Sessions, intervals, in.TipoReserva, blocks); err != nil {
		return nil, err
	}

	if err := uc.checkConflicts(ctx, in, intervals); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Persistência
	// --------------------------------------------------
	b := &models.Booking{
		Room:        in.Room,
		RoomName:    in.RoomName,
		TipoReserva: in.TipoReserva,
		Status:      string(domain.InitialStatus()),

		NomeCompleto:     in.NomeCompleto,
		SetorSolicitante: in.SetorSolicitante,
		Responsavel:      in.Responsavel,
		Telefone:         in.Telefone,
		Email:            in.Email,

		Sessions: in.Sessions,

		NumeroParticipantes: in.NumeroParticipantes,
		Participantes:       in.Participantes,
		Finalidade:          in.Finalidade,
		Descricao:           in.Descricao,
		Observacao:          in.Observacao,

		Projetor:    in.Projetor,
		SomProjetor: in.SomProjetor,
		Internet:    in.Internet,
		WifiTodos:   in.WifiTodos,
		ConexaoCabo: in.ConexaoCabo,

		SoftwareEspecifico: in.SoftwareEspecifico,
		QualSoftware:       in.QualSoftware,
		Papelaria:          in.Papelaria,
		MaterialExterno:    in.MaterialExterno,
		ApoioEquipe:        in.ApoioEquipe,

		ExternalParticipants: in.ExternalParticipants,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Pós-criação: cache, e-mails, auditoria, métricas
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, b.Room, b.Dates())

	adminEmails, err := uc.repo.AdminEmailsForRoom(ctx, b.Room)
	if err != nil {
		uc.logger.Warn("failed to load admin emails for notification",
			zap.String("room", b.Room), zap.Error(err))
		adminEmails = nil
	}
	uc.notifier.BookingCreated(b, adminEmails)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Room:     b.Room,
			Action:   "booking_requested",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}
	if uc.metrics != nil {
		uc.metrics.BookingsCreated.Inc()
	}

	return &CreateOutput{
		BookingID:       b.ID,
		ConfirmationURL: "/confirmar/" + b.ID,
		Participants:    b.Participantes,
	}, nil
}

// ======================================================
// CONFLITO / CAPACIDADE
// ======================================================

func (uc *CreateBooking) checkConflicts(ctx context.Context, in CreateInput, intervals []domain.Interval) error {

	// Caso A: Escola Fazendária - computador → limite de capacidade por hora
	if in.Room == domain.RoomEscolaFazendaria && in.TipoReserva == domain.TipoComputador {
		return uc.checkLabCapacity(ctx, in, intervals)
	}

	// Caso B: Escola Fazendária - sala → sem checagem de conflito: são
	// salas independentes e o admin define o local na aprovação.
	if in.Room == domain.RoomEscolaFazendaria {
		return nil
	}

	// Caso C: salas de uso exclusivo → qualquer sobreposição com
	// agendamento não recusado bloqueia.
	existing, err := uc.repo.ListActiveByRoom(ctx, in.Room)
	if err != nil {
		return err
	}

	for i, s := range in.Sessions {
		for _, other := range existing {
			otherSession, ok := other.SessionOn(s.Date)
			if !ok {
				continue
			}
			otherIv, err := domain.SessionInterval(otherSession)
			if err != nil {
				continue
			}
			if intervals[i].Overlaps(otherIv) {
				return httperr.ErrBusiness(
					"time_conflict",
					fmt.Sprintf("Horário indisponível para a %s no dia %s.",
						in.RoomName, domain.FormatDateBR(s.Date)),
				)
			}
		}
	}

	return nil
}

func (uc *CreateBooking) checkLabCapacity(ctx context.Context, in CreateInput, intervals []domain.Interval) error {

	capacity, err := uc.repo.LabCapacity(ctx, in.Room)
	if err != nil {
		return err
	}
	if capacity <= 0 {
		capacity = uc.rules.DefaultLabCapacity
	}

	existing, err := uc.repo.ListActiveByRoomAndTipo(ctx, in.Room, domain.TipoComputador)
	if err != nil {
		return err
	}

	for i, s := range in.Sessions {
		for _, h := range intervals[i].Hours() {
			hour := domain.HourInterval(h)

			inUse := 0
			for _, other := range existing {
				otherSession, ok := other.SessionOn(s.Date)
				if !ok {
					continue
				}
				otherIv, err := domain.SessionInterval(otherSession)
				if err != nil {
					continue
				}
				if otherIv.Overlaps(hour) {
					inUse += other.NumeroParticipantes
				}
			}

			if inUse+in.NumeroParticipantes > capacity {
				return httperr.ErrBusiness(
					"lab_capacity_exceeded",
					fmt.Sprintf("Não há computadores suficientes no dia %s às %02d:00. Restam: %d.",
						domain.FormatDateBR(s.Date), h, capacity-inUse),
				)
			}
		}
	}

	return nil
}
