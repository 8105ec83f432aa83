package booking

import (
	"context"
	"fmt"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type OccupiedHoursInput struct {
	Room string
	Date string
	Tipo string
}

type OccupiedHoursOutput struct {
	OccupiedHours []string `json:"occupiedHours"`
}

// ======================================================
// USE CASE
// ======================================================

// OccupiedHours responde a consulta de grade horária usada pelo
// frontend: quais horas cheias do dia já estão tomadas em uma sala.
// O critério é o mesmo da validação de criação, para que uma hora
// livre aqui nunca seja recusada lá.
type OccupiedHours struct {
	repo  domain.Repository
	cache OccupancyCache
	rules Rules
}

func NewOccupiedHours(repo domain.Repository, cache OccupancyCache, rules Rules) *OccupiedHours {
	return &OccupiedHours{repo: repo, cache: cache, rules: rules}
}

func (uc *OccupiedHours) Execute(ctx context.Context, in OccupiedHoursInput) (*OccupiedHoursOutput, error) {

	in.Tipo = normalizeTipo(in.Tipo)

	// Escola Fazendária - sala nunca tem conflito de horário (o admin
	// resolve a alocação física na aprovação), então a grade é sempre
	// livre.
	if in.Room == domain.RoomEscolaFazendaria && in.Tipo != domain.TipoComputador {
		return &OccupiedHoursOutput{OccupiedHours: []string{}}, nil
	}

	if hours, ok := uc.cache.Get(ctx, in.Room, in.Date, in.Tipo); ok {
		return &OccupiedHoursOutput{OccupiedHours: hours}, nil
	}

	var (
		hours []string
		err   error
	)

	if in.Room == domain.RoomEscolaFazendaria && in.Tipo == domain.TipoComputador {
		hours, err = uc.labOccupiedHours(ctx, in)
	} else {
		hours, err = uc.exclusiveOccupiedHours(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, in.Room, in.Date, in.Tipo, hours)

	return &OccupiedHoursOutput{OccupiedHours: hours}, nil
}

// --------------------------------------------------
// Salas exclusivas: hora ocupada se algum agendamento
// não recusado cobre o início dela.
// --------------------------------------------------

func (uc *OccupiedHours) exclusiveOccupiedHours(ctx context.Context, in OccupiedHoursInput) ([]string, error) {
	existing, err := uc.repo.ListActiveByRoom(ctx, in.Room)
	if err != nil {
		return nil, err
	}

	hours := []string{}
	for _, h := range uc.gridHours() {
		mark := h * 60
		for _, b := range existing {
			session, ok := b.SessionOn(in.Date)
			if !ok {
				continue
			}
			iv, err := domain.SessionInterval(session)
			if err != nil {
				continue
			}
			if iv.Start <= mark && mark < iv.End {
				hours = append(hours, hourLabel(h))
				break
			}
		}
	}
	return hours, nil
}

// --------------------------------------------------
// Laboratório: hora ocupada quando a soma de participantes
// das reservas de computador atinge a capacidade.
// --------------------------------------------------

func (uc *OccupiedHours) labOccupiedHours(ctx context.Context, in OccupiedHoursInput) ([]string, error) {
	capacity, err := uc.repo.LabCapacity(ctx, in.Room)
	if err != nil {
		return nil, err
	}
	if capacity <= 0 {
		capacity = uc.rules.DefaultLabCapacity
	}

	existing, err := uc.repo.ListActiveByRoomAndTipo(ctx, in.Room, domain.TipoComputador)
	if err != nil {
		return nil, err
	}

	hours := []string{}
	for _, h := range uc.gridHours() {
		hour := domain.HourInterval(h)

		inUse := 0
		for _, b := range existing {
			session, ok := b.SessionOn(in.Date)
			if !ok {
				continue
			}
			iv, err := domain.SessionInterval(session)
			if err != nil {
				continue
			}
			if iv.Overlaps(hour) {
				inUse += b.NumeroParticipantes
			}
		}

		if inUse >= capacity {
			hours = append(hours, hourLabel(h))
		}
	}
	return hours, nil
}

// gridHours devolve as horas cheias da janela de funcionamento,
// última hora iniciável incluída.
func (uc *OccupiedHours) gridHours() []int {
	w := uc.rules.EscolaWindow

	first := w.Open / 60
	last := (w.Close - domain.MinDurationMinutes) / 60

	grid := make([]int, 0, last-first+1)
	for h := first; h <= last; h++ {
		grid = append(grid, h)
	}
	return grid
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// normalizeTipo reduz o tipo ao vocabulário conhecido. Qualquer outro
// valor vira a variante vazia, a mesma que a invalidação de escrita
// limpa; sem isso um tipo arbitrário criaria uma chave de cache que
// nenhuma escrita invalida.
func normalizeTipo(tipo string) string {
	switch tipo {
	case domain.TipoSala, domain.TipoComputador:
		return tipo
	default:
		return ""
	}
}
