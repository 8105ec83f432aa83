package booking

import (
	"context"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SearchInput struct {
	Room   string
	Status string
	Name   string
	Sector string
	Dates  []string
}

// SearchResult é a visão pública de um agendamento: datas e horários
// já formatados, sem dados de contato do solicitante.
type SearchResult struct {
	ID         string   `json:"id"`
	Room       string   `json:"room"`
	RoomName   string   `json:"room_name"`
	Status     string   `json:"status"`
	Setor      string   `json:"setor"`
	Finalidade string   `json:"finalidade"`
	Dates      []string `json:"dates"`    // DD/MM/YYYY
	Horarios   []string `json:"horarios"` // "HH:MM às HH:MM", pareado com Dates
	Local      string   `json:"local"`
}

// ======================================================
// USE CASE
// ======================================================

type SearchBookings struct {
	repo domain.Repository
}

func NewSearchBookings(repo domain.Repository) *SearchBookings {
	return &SearchBookings{repo: repo}
}

func (uc *SearchBookings) Execute(ctx context.Context, in SearchInput) ([]SearchResult, error) {
	bookings, err := uc.repo.Search(ctx, domain.SearchFilter{
		Room:   in.Room,
		Status: in.Status,
		Name:   in.Name,
		Sector: in.Sector,
		Dates:  in.Dates,
	})
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(bookings))
	for i := range bookings {
		results = append(results, toSearchResult(&bookings[i]))
	}
	return results, nil
}

func toSearchResult(b *models.Booking) SearchResult {
	dates := make([]string, 0, len(b.Sessions))
	horarios := make([]string, 0, len(b.Sessions))
	for _, s := range b.Sessions {
		dates = append(dates, domain.FormatDateBR(s.Date))
		horarios = append(horarios, s.Start+" às "+s.End)
	}

	return SearchResult{
		ID:         b.ID,
		Room:       b.Room,
		RoomName:   b.RoomName,
		Status:     b.Status,
		Setor:      b.SetorSolicitante,
		Finalidade: b.Finalidade,
		Dates:      dates,
		Horarios:   horarios,
		Local:      b.Local,
	}
}
