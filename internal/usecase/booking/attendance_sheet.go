package booking

import (
	"context"
	"time"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type AttendanceEntry struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	IsVisitor bool   `json:"is_visitor"`
}

type AttendanceSheetOutput struct {
	Booking *models.Booking   `json:"booking"`
	Date    string            `json:"date"`
	Entries []AttendanceEntry `json:"entries"`
}

// ======================================================
// USE CASE
// ======================================================

// AttendanceSheet monta a lista de presença de um dia: os registros de
// confirmação existentes mais os participantes convidados que nunca
// responderam. Quem não respondeu aparece como "Pendente" enquanto o
// evento não começou e "Não Confirmado" depois.
type AttendanceSheet struct {
	repo domain.Repository
}

func NewAttendanceSheet(repo domain.Repository) *AttendanceSheet {
	return &AttendanceSheet{repo: repo}
}

func (uc *AttendanceSheet) Execute(ctx context.Context, bookingID, date string, actor Actor) (*AttendanceSheetOutput, error) {

	b, err := uc.repo.GetWithRelations(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := checkPermission(b, actor); err != nil {
		return nil, err
	}

	session, ok := b.SessionOn(date)
	if !ok {
		return nil, httperr.ErrBusiness(
			"invalid_attendance_date",
			"A data "+domain.FormatDateBR(date)+" não pertence a este agendamento.",
		)
	}

	defaultStatus := unansweredStatus(session, timezone.Now())

	entries := []AttendanceEntry{}
	seen := map[string]bool{}

	for _, r := range b.AttendanceRecords {
		if r.AttendanceDate != date {
			continue
		}
		entries = append(entries, AttendanceEntry{
			FullName:  r.FullName,
			Email:     r.Email,
			Status:    r.Status,
			IsVisitor: r.IsVisitor,
		})
		seen[r.Email] = true
	}

	if !seen[b.Email] {
		entries = append(entries, AttendanceEntry{
			FullName: b.NomeCompleto,
			Email:    b.Email,
			Status:   defaultStatus,
		})
	}
	for _, email := range b.Participantes {
		if email == "" || seen[email] || email == b.Email {
			continue
		}
		entries = append(entries, AttendanceEntry{
			Email:  email,
			Status: defaultStatus,
		})
		seen[email] = true
	}
	for _, p := range b.ExternalParticipants {
		if seen[p.Email] {
			continue
		}
		entries = append(entries, AttendanceEntry{
			FullName:  p.FullName,
			Email:     p.Email,
			Status:    defaultStatus,
			IsVisitor: true,
		})
		seen[p.Email] = true
	}

	return &AttendanceSheetOutput{
		Booking: b,
		Date:    date,
		Entries: entries,
	}, nil
}

// unansweredStatus decide como exibir quem não confirmou: antes do
// início da session ainda é "Pendente"; depois, "Não Confirmado".
func unansweredStatus(session models.Session, now time.Time) string {
	day, err := domain.ParseDate(session.Date, timezone.Location())
	if err != nil {
		return models.AttendancePending
	}
	iv, err := domain.SessionInterval(session)
	if err != nil {
		return models.AttendancePending
	}

	start := day.Add(time.Duration(iv.Start) * time.Minute)
	if now.Before(start) {
		return models.AttendancePending
	}
	return models.AttendanceUnconfirmed
}
