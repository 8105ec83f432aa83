package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/mailer"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

// Store é o recorte de persistência que o scheduler precisa.
type Store interface {
	ListApprovedOnDate(ctx context.Context, date string) ([]models.Booking, error)
	ListApproved(ctx context.Context) ([]models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	PendingAttendance(ctx context.Context, bookingID, date string) ([]models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, r *models.AttendanceRecord) error
}

type MailSender interface {
	SendAttendanceConfirmation(b *models.Booking, to, name, date string) error
}

// Scheduler roda duas tarefas de fundo:
//   - quando a janela de um agendamento aprovado abre, dispara os e-mails
//     de confirmação de presença do dia (uma vez por data);
//   - marca como "Não Confirmado" os registros pendentes uma hora depois
//     do fim da session.
type Scheduler struct {
	store  Store
	mail   MailSender
	logger *zap.Logger

	checkInterval     time.Duration
	reconcileInterval time.Duration

	// Pausa entre destinatários para respeitar o rate limit do provedor.
	recipientDelay time.Duration

	// Estado de pausa quando o provedor reporta limite diário. Pertence
	// ao scheduler e só o handler de erro de envio escreve nele.
	mu          sync.Mutex
	pausedUntil time.Time
	cooldown    time.Duration

	stopChan chan struct{}
}

func New(store Store, mail MailSender, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		mail:   mail,
		logger: logger,

		checkInterval:     time.Minute,
		reconcileInterval: 15 * time.Minute,
		recipientDelay:    500 * time.Millisecond,
		cooldown:          6 * time.Hour,

		stopChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting background scheduler")
	go s.runAttendanceMailTask(ctx)
	go s.runReconcileTask(ctx)
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping background scheduler")
	close(s.stopChan)
}

// --------------------------------------------------
// Tarefa 1: e-mails de confirmação de presença
// --------------------------------------------------

func (s *Scheduler) runAttendanceMailTask(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dispatchAttendanceMails(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) dispatchAttendanceMails(ctx context.Context) {
	if s.isPaused() {
		return
	}

	now := timezone.Now()
	today := now.Format("2006-01-02")
	nowMinutes := now.Hour()*60 + now.Minute()

	bookings, err := s.store.ListApprovedOnDate(ctx, today)
	if err != nil {
		s.logger.Error("failed to list bookings for attendance mails", zap.Error(err))
		return
	}

	for i := range bookings {
		b := &bookings[i]

		if alreadySent(b, today) {
			continue
		}

		session, ok := b.SessionOn(today)
		if !ok {
			continue
		}

		iv, err := domain.SessionInterval(session)
		if err != nil {
			continue
		}

		// Envia enquanto o evento está em andamento: já começou e ainda
		// não terminou.
		if nowMinutes < iv.Start || nowMinutes > iv.End {
			continue
		}

		s.logger.Info("sending attendance confirmation mails",
			zap.String("booking_id", b.ID),
			zap.String("room", b.Room),
			zap.String("date", today),
		)

		if err := s.sendForBooking(b, today); err != nil {
			if errors.Is(err, mailer.ErrDailyLimit) {
				s.pause()
				return
			}
			s.logger.Error("attendance mail dispatch failed",
				zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}

		b.ConfirmationEmailsSent = append(b.ConfirmationEmailsSent, today)
		if err := s.store.Update(ctx, b); err != nil {
			s.logger.Error("failed to mark confirmation mails as sent",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
}

func (s *Scheduler) sendForBooking(b *models.Booking, date string) error {
	if err := s.mail.SendAttendanceConfirmation(b, b.Email, b.NomeCompleto, date); err != nil {
		return err
	}

	for _, email := range b.Participantes {
		if email == "" || email == b.Email {
			continue
		}
		time.Sleep(s.recipientDelay)
		if err := s.mail.SendAttendanceConfirmation(b, email, "", date); err != nil {
			return err
		}
	}

	for _, p := range b.ExternalParticipants {
		time.Sleep(s.recipientDelay)
		if err := s.mail.SendAttendanceConfirmation(b, p.Email, p.FullName, date); err != nil {
			return err
		}
	}

	return nil
}

func alreadySent(b *models.Booking, date string) bool {
	for _, d := range b.ConfirmationEmailsSent {
		if d == date {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Tarefa 2: reconciliação de presenças pendentes
// --------------------------------------------------

func (s *Scheduler) runReconcileTask(ctx context.Context) {
	ticker := time.NewTicker(s.reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reconcileUnconfirmed(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Uma hora depois do fim da session o participante perde o prazo de
// confirmação e o registro pendente vira "Não Confirmado".
const confirmationGrace = time.Hour

func (s *Scheduler) reconcileUnconfirmed(ctx context.Context) {
	now := timezone.Now()

	bookings, err := s.store.ListApproved(ctx)
	if err != nil {
		s.logger.Error("failed to list bookings for reconciliation", zap.Error(err))
		return
	}

	updated := 0

	for i := range bookings {
		b := &bookings[i]

		for _, session := range b.Sessions {
			day, err := domain.ParseDate(session.Date, timezone.Location())
			if err != nil {
				continue
			}
			iv, err := domain.SessionInterval(session)
			if err != nil {
				continue
			}

			deadline := day.Add(time.Duration(iv.End)*time.Minute + confirmationGrace)
			if now.Before(deadline) {
				continue
			}

			pending, err := s.store.PendingAttendance(ctx, b.ID, session.Date)
			if err != nil {
				s.logger.Error("failed to load pending attendance",
					zap.String("booking_id", b.ID), zap.Error(err))
				continue
			}

			for j := range pending {
				pending[j].Status = models.AttendanceUnconfirmed
				if err := s.store.UpdateAttendance(ctx, &pending[j]); err != nil {
					s.logger.Error("failed to mark attendance unconfirmed",
						zap.String("record_id", pending[j].ID), zap.Error(err))
					continue
				}
				updated++
			}
		}
	}

	if updated > 0 {
		s.logger.Info("attendance records marked unconfirmed", zap.Int("count", updated))
	}
}

// --------------------------------------------------
// Pausa por limite diário
// --------------------------------------------------

func (s *Scheduler) isPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timezone.Now().Before(s.pausedUntil)
}

func (s *Scheduler) pause() {
	s.mu.Lock()
	s.pausedUntil = timezone.Now().Add(s.cooldown)
	until := s.pausedUntil
	s.mu.Unlock()

	s.logger.Warn("mail provider daily limit reached, pausing scheduler",
		zap.Time("paused_until", until))
}
