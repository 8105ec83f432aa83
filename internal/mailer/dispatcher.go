package mailer

import (
	"go.uber.org/zap"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

type message struct {
	to      string
	subject string
	body    string
}

// Dispatcher desacopla o envio de e-mail do caminho da requisição: os
// handlers enfileiram e respondem; o worker envia. Falha de envio é
// logada e engolida — a mudança de estado no banco é a fonte de verdade.
type Dispatcher struct {
	service *Service
	logger  *zap.Logger
	queue   chan message
}

func NewDispatcher(service *Service, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		service: service,
		logger:  logger,
		queue:   make(chan message, 256),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.service.Send(msg.to, msg.subject, msg.body); err != nil {
			d.logger.Warn("mail send failed",
				zap.String("to", msg.to),
				zap.String("subject", msg.subject),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) enqueue(to, subject, body string) {
	if to == "" {
		return
	}
	select {
	case d.queue <- message{to: to, subject: subject, body: body}:
	default:
		d.logger.Warn("mail queue full, dropping message", zap.String("to", to))
	}
}

// --------------------------------------------------
// Eventos do ciclo de vida
// --------------------------------------------------

func (d *Dispatcher) BookingCreated(b *models.Booking, adminEmails []string) {
	subject, body := d.service.bookingCreatedMail(b)
	d.enqueue(b.Email, subject, body)

	subject, body = d.service.adminNotificationMail(b)
	for _, email := range adminEmails {
		d.enqueue(email, subject, body)
	}
}

func (d *Dispatcher) BookingApproved(b *models.Booking) {
	subject, body := d.service.approvalMail(b)
	d.enqueue(b.Email, subject, body)

	// Convite com link de presença para todos os participantes.
	subject, body = d.service.attendanceLinkMail(b)
	for _, email := range b.Participantes {
		if email != b.Email {
			d.enqueue(email, subject, body)
		}
	}
	for _, p := range b.ExternalParticipants {
		d.enqueue(p.Email, subject, body)
	}
}

func (d *Dispatcher) BookingRejected(b *models.Booking) {
	subject, body := d.service.rejectionMail(b)
	d.enqueue(b.Email, subject, body)
}

func (d *Dispatcher) BookingUnderReview(b *models.Booking) {
	subject, body := d.service.underReviewMail(b)
	d.enqueue(b.Email, subject, body)
}
