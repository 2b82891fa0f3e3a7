package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

func TestMonthlyHistogram_Window(t *testing.T) {
	today := date(t, "2024-06-15")
	h := MonthlyHistogram(nil, today)

	require.Len(t, h, HistogramMonths)
	assert.Equal(t, MonthBucket{Label: "Jul/23", FullLabel: "Julho de 2023", Year: 2023, Month: 7}, h[0])
	assert.Equal(t, MonthBucket{Label: "Jun/24", FullLabel: "Junho de 2024", Year: 2024, Month: 6}, h[11])
	for _, b := range h {
		assert.Zero(t, b.Count)
	}
	for i := 1; i < len(h); i++ {
		prev, cur := h[i-1], h[i]
		assert.True(t, cur.Year*12+cur.Month == prev.Year*12+prev.Month+1, "gap at %d", i)
	}
}

func TestMonthlyHistogram_Counts(t *testing.T) {
	today := date(t, "2024-06-15")
	ls := []models.License{
		{ExpirationDate: "2024-06-30"},
		{ExpirationDate: "2024-06-01"},
		{ExpirationDate: "2024-03-01"},
		{ExpirationDate: "2023-07-01"}, // primeiro mês da janela
		{ExpirationDate: "2023-06-30"}, // fora
		{ExpirationDate: "2024-07-01"}, // futuro, fora
		{ExpirationDate: "2024-13-01"}, // mês inválido
		{ExpirationDate: ""},
	}
	h := MonthlyHistogram(ls, today)

	assert.Equal(t, 1, h[0].Count)
	assert.Equal(t, 1, h[8].Count) // Mar/24
	assert.Equal(t, 2, h[11].Count)

	sum := 0
	for _, b := range h {
		sum += b.Count
	}
	assert.Equal(t, 4, sum)
}

func TestMonthlyHistogram_YearBoundary(t *testing.T) {
	today := date(t, "2025-01-31")
	h := MonthlyHistogram([]models.License{{ExpirationDate: "2024-12-31"}}, today)

	require.Len(t, h, 12)
	assert.Equal(t, "Fev/24", h[0].Label)
	assert.Equal(t, "Dez/24", h[10].Label)
	assert.Equal(t, 1, h[10].Count)
	assert.Equal(t, "Jan/25", h[11].Label)
	assert.Equal(t, "Janeiro de 2025", h[11].FullLabel)
}

func TestMonthlyHistogram_MarchLabel(t *testing.T) {
	h := MonthlyHistogram(nil, date(t, "2024-03-10"))
	assert.Equal(t, "Mar/24", h[11].Label)
	assert.Equal(t, "Março de 2024", h[11].FullLabel)
}
