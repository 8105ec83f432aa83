package timezone

import "time"

// Todas as datas do sistema são interpretadas no fuso da SEGET.
const DefaultTimezone = "America/Sao_Paulo"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today retorna a data corrente no formato YYYY-MM-DD.
func Today() string {
	return Now().Format("2006-01-02")
}
