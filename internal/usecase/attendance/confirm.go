package attendance

import (
	"context"
	"strings"
	"time"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/validators"
)

// Store é o recorte de persistência da confirmação de presença.
type Store interface {
	FindRecord(ctx context.Context, bookingID, date, email string) (*models.AttendanceRecord, error)
	SaveRecord(ctx context.Context, r *models.AttendanceRecord) error
	EmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
}

// ======================================================
// INPUT
// ======================================================

type ConfirmInput struct {
	BookingID string
	Date      string
	Email     string
	FullName  string
}

// ======================================================
// USE CASE
// ======================================================

// ConfirmAttendance registra a presença de um participante via link de
// confirmação. O prazo fecha uma hora depois do fim da session do dia.
type ConfirmAttendance struct {
	bookings domain.Repository
	store    Store
}

func NewConfirmAttendance(bookings domain.Repository, store Store) *ConfirmAttendance {
	return &ConfirmAttendance{bookings: bookings, store: store}
}

func (uc *ConfirmAttendance) Execute(ctx context.Context, in ConfirmInput) error {

	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmailSyntaxValid(email) {
		return httperr.ErrBusiness("invalid_email", "E-mail inválido.")
	}

	b, err := uc.bookings.GetWithRelations(ctx, in.BookingID)
	if err != nil {
		return err
	}

	if b.Status != string(domain.StatusApproved) {
		return httperr.ErrBusiness(
			"booking_not_approved",
			"Este agendamento não está aprovado.",
		)
	}

	session, ok := b.SessionOn(in.Date)
	if !ok {
		return httperr.ErrBusiness(
			"invalid_attendance_date",
			"A data "+domain.FormatDateBR(in.Date)+" não pertence a este agendamento.",
		)
	}

	if err := checkDeadline(session); err != nil {
		return err
	}

	fullName, isVisitor, err := uc.identify(ctx, b, email, in.FullName)
	if err != nil {
		return err
	}

	// Upsert: reconfirmar é idempotente.
	record, err := uc.store.FindRecord(ctx, b.ID, in.Date, email)
	if err != nil && !httperr.IsNotFound(err) {
		return err
	}
	if record == nil {
		record = &models.AttendanceRecord{
			BookingID:      b.ID,
			Email:          email,
			AttendanceDate: in.Date,
		}
	}

	now := timezone.Now()
	record.FullName = fullName
	record.Status = models.AttendancePresent
	record.IsVisitor = isVisitor
	record.ConfirmedAt = &now

	return uc.store.SaveRecord(ctx, record)
}

// identify resolve o nome e a origem do confirmante: solicitante,
// participante convidado, servidor cadastrado ou visitante externo.
func (uc *ConfirmAttendance) identify(ctx context.Context, b *models.Booking, email, givenName string) (string, bool, error) {

	if strings.EqualFold(email, b.Email) {
		return b.NomeCompleto, false, nil
	}

	for _, p := range b.ExternalParticipants {
		if strings.EqualFold(email, p.Email) {
			return p.FullName, true, nil
		}
	}

	invited := false
	for _, e := range b.Participantes {
		if strings.EqualFold(email, e) {
			invited = true
			break
		}
	}

	if emp, err := uc.store.EmployeeByEmail(ctx, email); err == nil && emp != nil {
		return emp.FullName, false, nil
	}

	if invited {
		return givenName, false, nil
	}

	// Desconhecido: aceita como visitante desde que informe o nome.
	if givenName == "" {
		return "", false, httperr.ErrBusiness(
			"name_required",
			"Informe seu nome completo para confirmar presença.",
		)
	}
	return givenName, true, nil
}

func checkDeadline(session models.Session) error {
	day, err := domain.ParseDate(session.Date, timezone.Location())
	if err != nil {
		return httperr.ErrBusiness("invalid_date", "Data inválida: "+session.Date+".")
	}
	iv, err := domain.SessionInterval(session)
	if err != nil {
		return httperr.ErrBusiness("invalid_time", "Horário inválido.")
	}

	deadline := day.Add(time.Duration(iv.End)*time.Minute + time.Hour)
	if timezone.Now().After(deadline) {
		return httperr.ErrBusiness(
			"confirmation_expired",
			"O prazo para confirmar presença neste dia já encerrou.",
		)
	}
	return nil
}
