package mailer

import (
	"fmt"
	"strings"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// Corpo dos e-mails transacionais. O texto é curto e funcional; o layout
// fica por conta do cliente de e-mail.

func sessionLines(b *models.Booking) string {
	var sb strings.Builder
	for _, s := range b.Sessions {
		fmt.Fprintf(&sb, "<li>%s, das %s às %s</li>", domain.FormatDateBR(s.Date), s.Start, s.End)
	}
	return sb.String()
}

func (s *Service) confirmationURL(bookingID string) string {
	return fmt.Sprintf("%s/confirmar/%s", s.frontendURL, bookingID)
}

func (s *Service) bookingCreatedMail(b *models.Booking) (string, string) {
	subject := "SEGET - Solicitação de agendamento recebida"
	body := fmt.Sprintf(
		`<p>Olá, %s.</p>
<p>Recebemos sua solicitação de agendamento da sala <strong>%s</strong> para:</p>
<ul>%s</ul>
<p>Você receberá um novo e-mail quando a administração analisar o pedido.</p>
<p>Protocolo: %s</p>`,
		b.NomeCompleto, b.RoomName, sessionLines(b), b.ID,
	)
	return subject, body
}

func (s *Service) adminNotificationMail(b *models.Booking) (string, string) {
	subject := fmt.Sprintf("SEGET - Nova solicitação: %s", b.RoomName)
	body := fmt.Sprintf(
		`<p>Nova solicitação de agendamento aguardando análise.</p>
<p><strong>Sala:</strong> %s<br><strong>Solicitante:</strong> %s (%s)<br><strong>Finalidade:</strong> %s</p>
<ul>%s</ul>`,
		b.RoomName, b.NomeCompleto, b.SetorSolicitante, b.Finalidade, sessionLines(b),
	)
	return subject, body
}

func (s *Service) approvalMail(b *models.Booking) (string, string) {
	subject := "SEGET - Agendamento aprovado"
	local := ""
	if b.Local != "" {
		local = fmt.Sprintf("<p><strong>Local:</strong> %s</p>", b.Local)
	}
	body := fmt.Sprintf(
		`<p>Olá, %s.</p>
<p>Seu agendamento da sala <strong>%s</strong> foi <strong>aprovado</strong>.</p>
<ul>%s</ul>%s`,
		b.NomeCompleto, b.RoomName, sessionLines(b), local,
	)
	return subject, body
}

func (s *Service) rejectionMail(b *models.Booking) (string, string) {
	subject := "SEGET - Agendamento recusado"
	reason := ""
	if b.RejectionReason != nil && *b.RejectionReason != "" {
		reason = fmt.Sprintf("<p><strong>Motivo:</strong> %s</p>", *b.RejectionReason)
	}
	body := fmt.Sprintf(
		`<p>Olá, %s.</p>
<p>Seu agendamento da sala <strong>%s</strong> foi <strong>recusado</strong>.</p>
<ul>%s</ul>%s`,
		b.NomeCompleto, b.RoomName, sessionLines(b), reason,
	)
	return subject, body
}

func (s *Service) underReviewMail(b *models.Booking) (string, string) {
	subject := "SEGET - Agendamento em análise"
	note := ""
	if b.ObservacaoAdmin != "" {
		note = fmt.Sprintf("<p><strong>Observação da administração:</strong> %s</p>", b.ObservacaoAdmin)
	}
	body := fmt.Sprintf(
		`<p>Olá, %s.</p>
<p>Seu agendamento da sala <strong>%s</strong> está <strong>em análise</strong> pela administração.</p>%s`,
		b.NomeCompleto, b.RoomName, note,
	)
	return subject, body
}

func (s *Service) attendanceLinkMail(b *models.Booking) (string, string) {
	subject := fmt.Sprintf("SEGET - Convite: %s", b.Finalidade)
	body := fmt.Sprintf(
		`<p>Você foi convidado para <strong>%s</strong> na sala %s.</p>
<ul>%s</ul>
<p>No dia do evento, confirme sua presença pelo link:<br><a href="%s">%s</a></p>`,
		b.Finalidade, b.RoomName, sessionLines(b), s.confirmationURL(b.ID), s.confirmationURL(b.ID),
	)
	return subject, body
}

// SendAttendanceConfirmation é usado pelo scheduler quando a janela do
// evento abre: pede a confirmação de presença do dia.
func (s *Service) SendAttendanceConfirmation(b *models.Booking, to, name, date string) error {
	if name == "" {
		name = to
	}
	subject := fmt.Sprintf("SEGET - Confirme sua presença: %s", b.Finalidade)
	body := fmt.Sprintf(
		`<p>Olá, %s.</p>
<p>O evento <strong>%s</strong> (sala %s) está em andamento hoje, %s.</p>
<p>Confirme sua presença pelo link:<br><a href="%s">%s</a></p>`,
		name, b.Finalidade, b.RoomName, domain.FormatDateBR(date),
		s.confirmationURL(b.ID), s.confirmationURL(b.ID),
	)
	return s.Send(to, subject, body)
}
