package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// Os horários chegam como "HH:MM" e são normalizados para minutos desde
// a meia-noite assim que entram; toda comparação daqui para baixo é
// aritmética inteira, nunca comparação de string.

// MinutesOf converte "HH:MM" em minutos desde a meia-noite.
func MinutesOf(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("horário inválido: %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("horário inválido: %q", hm)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("horário inválido: %q", hm)
	}

	return h*60 + m, nil
}

// Interval é um intervalo meio-aberto [Start, End) em minutos.
type Interval struct {
	Start int
	End   int
}

func ParseInterval(start, end string) (Interval, error) {
	s, err := MinutesOf(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := MinutesOf(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && iv.End > o.Start
}

func (iv Interval) Contains(minute int) bool {
	return minute >= iv.Start && minute < iv.End
}

// Hours retorna as horas cheias que o intervalo atravessa.
// Ex.: 09:30–10:30 atravessa as horas 9 e 10.
func (iv Interval) Hours() []int {
	var hours []int
	for h := iv.Start / 60; h*60 < iv.End; h++ {
		hours = append(hours, h)
	}
	return hours
}

// HourInterval é o intervalo [h:00, h+1:00) de uma hora cheia.
func HourInterval(h int) Interval {
	return Interval{Start: h * 60, End: (h + 1) * 60}
}

// ParseDate interpreta YYYY-MM-DD no fuso local do sistema (nunca em UTC,
// para o dia da semana sair certo).
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, loc)
}

func IsWeekend(date string, loc *time.Location) (bool, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return false, err
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday, nil
}

// SessionInterval devolve o intervalo já normalizado de uma session.
func SessionInterval(s models.Session) (Interval, error) {
	return ParseInterval(s.Start, s.End)
}

// FormatDateBR converte YYYY-MM-DD para DD/MM/YYYY. Entrada que não é
// uma data volta como chegou, para a mensagem ao usuário não sair
// embaralhada.
func FormatDateBR(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
