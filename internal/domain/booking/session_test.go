package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

func TestMinutesOf(t *testing.T) {
	got, err := MinutesOf("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, got)

	got, err = MinutesOf("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = MinutesOf("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, got)
}

func TestMinutesOfInvalid(t *testing.T) {
	for _, hm := range []string{"", "8h30", "24:00", "10:60", "10", "aa:bb"} {
		_, err := MinutesOf(hm)
		assert.Error(t, err, hm)
	}
}

// A comparação é aritmética: "09:00" > "10:00" como string seria falso
// de qualquer jeito, mas "9:00" vs "10:00" inverteria. Em minutos não.
func TestMinutesOfSingleDigitHour(t *testing.T) {
	nine, err := MinutesOf("9:00")
	require.NoError(t, err)

	ten, err := MinutesOf("10:00")
	require.NoError(t, err)

	assert.Less(t, nine, ten)
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: 600, End: 720} // 10:00–12:00

	assert.True(t, base.Overlaps(Interval{Start: 660, End: 780}))
	assert.True(t, base.Overlaps(Interval{Start: 540, End: 660}))
	assert.True(t, base.Overlaps(Interval{Start: 630, End: 690}))

	// Meio-aberto: encostar não é sobrepor.
	assert.False(t, base.Overlaps(Interval{Start: 720, End: 780}))
	assert.False(t, base.Overlaps(Interval{Start: 540, End: 600}))
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{Start: 600, End: 720}

	assert.True(t, iv.Contains(600))
	assert.True(t, iv.Contains(719))
	assert.False(t, iv.Contains(720))
	assert.False(t, iv.Contains(599))
}

func TestIntervalHours(t *testing.T) {
	iv := Interval{Start: 570, End: 630} // 09:30–10:30
	assert.Equal(t, []int{9, 10}, iv.Hours())

	iv = Interval{Start: 600, End: 720} // 10:00–12:00
	assert.Equal(t, []int{10, 11}, iv.Hours())

	iv = Interval{Start: 600, End: 660} // 10:00–11:00
	assert.Equal(t, []int{10}, iv.Hours())
}

func TestHourInterval(t *testing.T) {
	iv := HourInterval(14)
	assert.Equal(t, 840, iv.Start)
	assert.Equal(t, 900, iv.End)
}

func TestIsWeekend(t *testing.T) {
	loc := timezone.Location()

	sat, err := IsWeekend("2026-09-05", loc)
	require.NoError(t, err)
	assert.True(t, sat)

	sun, err := IsWeekend("2026-09-06", loc)
	require.NoError(t, err)
	assert.True(t, sun)

	mon, err := IsWeekend("2026-09-07", loc)
	require.NoError(t, err)
	assert.False(t, mon)

	_, err = IsWeekend("06/09/2026", loc)
	assert.Error(t, err)
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "07/09/2026", FormatDateBR("2026-09-07"))

	// Entrada malformada passa reta, mesmo com três partes hifenizadas.
	assert.Equal(t, "not-a-date", FormatDateBR("not-a-date"))
	assert.Equal(t, "aa-bb-cccc", FormatDateBR("aa-bb-cccc"))
	assert.Equal(t, "2026-13-40", FormatDateBR("2026-13-40"))
}
