package booking

import (
	"fmt"
	"time"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// ===============================
// Regras genéricas
// ===============================

const MinDurationMinutes = 60

// EscolaDateCount: a Escola Fazendária exige exatamente 3 datas por pedido.
const EscolaDateCount = 3

// ValidateSessions aplica as regras que valem para qualquer sala:
// horários bem formados, fim > início, duração mínima e nada em fim de
// semana. Devolve os intervalos já normalizados, na ordem das sessions.
func ValidateSessions(sessions []models.Session, loc *time.Location) ([]Interval, error) {
	if len(sessions) == 0 {
		return nil, httperr.ErrBusiness(
			"missing_dates",
			"Selecione ao menos uma data para o agendamento.",
		)
	}

	intervals := make([]Interval, 0, len(sessions))

	for _, s := range sessions {
		iv, err := SessionInterval(s)
		if err != nil {
			return nil, httperr.ErrBusiness(
				"invalid_time",
				fmt.Sprintf("Horário inválido no dia %s.", FormatDateBR(s.Date)),
			)
		}

		if iv.End <= iv.Start {
			return nil, httperr.ErrBusiness(
				"end_before_start",
				fmt.Sprintf("A hora final deve ser maior que a hora inicial no dia %s.", FormatDateBR(s.Date)),
			)
		}

		if iv.End-iv.Start < MinDurationMinutes {
			return nil, httperr.ErrBusiness(
				"min_duration",
				fmt.Sprintf("O agendamento do dia %s deve ter duração mínima de 1 hora.", FormatDateBR(s.Date)),
			)
		}

		weekend, err := IsWeekend(s.Date, loc)
		if err != nil {
			return nil, httperr.ErrBusiness(
				"invalid_date",
				fmt.Sprintf("Data inválida: %s.", s.Date),
			)
		}
		if weekend {
			return nil, httperr.ErrBusiness(
				"weekend_not_allowed",
				fmt.Sprintf("A data %s cai em um final de semana. Não permitido.", FormatDateBR(s.Date)),
			)
		}

		intervals = append(intervals, iv)
	}

	return intervals, nil
}

// ===============================
// Regras da Escola Fazendária
// ===============================

// EscolaWindow é a janela de funcionamento configurada (ex.: 08:00–17:00).
type EscolaWindow struct {
	Open  int // minutos
	Close int
}

func NewEscolaWindow(open, close string) (EscolaWindow, error) {
	o, err := MinutesOf(open)
	if err != nil {
		return EscolaWindow{}, err
	}
	c, err := MinutesOf(close)
	if err != nil {
		return EscolaWindow{}, err
	}
	return EscolaWindow{Open: o, Close: c}, nil
}

// ValidateEscolaSessions aplica as regras próprias da Escola Fazendária:
// exatamente 3 datas e, para reserva de sala, cada intervalo dentro da
// janela (início até uma hora antes do fechamento, fim a partir de uma
// hora depois da abertura). Reserva de computador não tem restrição de
// janela.
func ValidateEscolaSessions(sessions []models.Session, intervals []Interval, tipo string, w EscolaWindow) error {
	if len(sessions) != EscolaDateCount {
		return httperr.ErrBusiness(
			"escola_requires_three_dates",
			"Para a Escola Fazendária, é obrigatório selecionar exatamente 3 datas.",
		)
	}

	if tipo != TipoSala {
		return nil
	}

	latestStart := w.Close - MinDurationMinutes
	earliestEnd := w.Open + MinDurationMinutes

	for i, iv := range intervals {
		if iv.Start < w.Open || iv.Start > latestStart {
			return httperr.ErrBusiness(
				"escola_invalid_start",
				fmt.Sprintf(
					"Horário de início inválido para a Escola Fazendária no dia %s (permitido entre %s e %s).",
					FormatDateBR(sessions[i].Date), minutesLabel(w.Open), minutesLabel(latestStart),
				),
			)
		}
		if iv.End < earliestEnd || iv.End > w.Close {
			return httperr.ErrBusiness(
				"escola_invalid_end",
				fmt.Sprintf(
					"Horário de fim inválido para a Escola Fazendária no dia %s (permitido entre %s e %s).",
					FormatDateBR(sessions[i].Date), minutesLabel(earliestEnd), minutesLabel(w.Close),
				),
			)
		}
	}

	return nil
}

// ===============================
// Bloqueios administrativos
// ===============================

// CheckBlocks recusa o pedido se alguma session colidir com um bloqueio:
// data presente no bloqueio e algum horário bloqueado dentro de
// [início, fim) da session.
func CheckBlocks(sessions []models.Session, intervals []Interval, tipo string, blocks []models.RoomBlock) error {
	for i, s := range sessions {
		for _, blk := range blocks {
			if !blk.HasDate(s.Date) || !blk.AppliesToTipo(tipo) {
				continue
			}

			for _, t := range blk.Times {
				minute, err := MinutesOf(t)
				if err != nil {
					continue
				}
				if intervals[i].Contains(minute) {
					return httperr.ErrBusiness(
						"room_blocked",
						fmt.Sprintf(
							"O horário no dia %s está bloqueado pela administração (Motivo: %s).",
							FormatDateBR(s.Date), blk.Reason,
						),
					)
				}
			}
		}
	}
	return nil
}

func minutesLabel(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
