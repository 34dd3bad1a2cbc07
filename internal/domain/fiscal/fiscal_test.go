package fiscal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/internal/domain/fiscal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestYear_InicioSeptiembre valida la convención con año fiscal iniciando en
// septiembre: sep-dic pertenecen al año siguiente, ene-ago al mismo año.
func TestYear_InicioSeptiembre(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want int
	}{
		{"primer día del FY", date(2020, time.September, 1), 2021},
		{"diciembre cae en el FY siguiente", date(2020, time.December, 31), 2021},
		{"enero sigue en el mismo FY", date(2021, time.January, 1), 2021},
		{"último día del FY", date(2021, time.August, 31), 2021},
		{"inicio del FY siguiente", date(2021, time.September, 1), 2022},
		{"mitad de año calendario", date(2021, time.March, 15), 2021},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fiscal.Year(tc.in, time.September),
				"el año fiscal de %s debe ser %d", tc.in.Format("2006-01-02"), tc.want)
		})
	}
}

// TestYear_InicioEnero verifica el caso especial: con inicio en enero el año
// fiscal coincide con el año calendario.
func TestYear_InicioEnero(t *testing.T) {
	assert.Equal(t, 2021, fiscal.Year(date(2021, time.January, 1), time.January))
	assert.Equal(t, 2021, fiscal.Year(date(2021, time.December, 31), time.January))
}

// TestYear_SiempreCalendarioOSiguiente propiedad: el año fiscal siempre es el
// año calendario o el año calendario + 1, para cualquier mes de inicio.
func TestYear_SiempreCalendarioOSiguiente(t *testing.T) {
	for start := time.January; start <= time.December; start++ {
		for m := time.January; m <= time.December; m++ {
			d := date(2023, m, 15)
			fy := fiscal.Year(d, start)
			assert.Contains(t, []int{2023, 2024}, fy,
				"inicio=%d mes=%d: FY fuera de rango", start, m)
		}
	}
}

// TestYear_Determinista mismo input, mismo output.
func TestYear_Determinista(t *testing.T) {
	d := date(2021, time.October, 10)
	assert.Equal(t, fiscal.Year(d, time.September), fiscal.Year(d, time.September))
}

func TestMonth_InicioSeptiembre(t *testing.T) {
	cases := []struct {
		in   time.Time
		want int
	}{
		{date(2020, time.September, 1), 1},
		{date(2020, time.October, 15), 2},
		{date(2020, time.December, 31), 4},
		{date(2021, time.January, 1), 5},
		{date(2021, time.August, 31), 12},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fiscal.Month(tc.in, time.September),
			"mes fiscal de %s", tc.in.Format("2006-01-02"))
	}
}

// TestMonth_SiempreEnRango el mes fiscal cae en 1..12 para toda combinación.
func TestMonth_SiempreEnRango(t *testing.T) {
	for start := time.January; start <= time.December; start++ {
		for m := time.January; m <= time.December; m++ {
			fm := fiscal.Month(date(2023, m, 1), start)
			assert.GreaterOrEqual(t, fm, 1)
			assert.LessOrEqual(t, fm, 12)
		}
	}
}
