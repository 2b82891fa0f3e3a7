package license

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

// HistogramMonths é o tamanho da janela móvel do gráfico de vencimentos.
const HistogramMonths = 12

type MonthBucket struct {
	Label     string `json:"label"`     // "Jun/24"
	FullLabel string `json:"fullLabel"` // "Junho de 2024"
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Count     int    `json:"count"`
}

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

func monthLabels(year int, month time.Month) (short, full string) {
	name := monthNames[month-1]
	short = fmt.Sprintf("%s/%02d", string([]rune(name)[:3]), year%100)
	full = fmt.Sprintf("%s de %d", name, year)
	return short, full
}

// MonthlyHistogram conta os vencimentos dos últimos 12 meses, do mais antigo
// ao mês corrente (inclusive). Meses sem vencimento aparecem com zero.
//
// Ano e mês são lidos direto da string YYYY-MM-DD, sem montar um time.Time,
// para que fuso horário nenhum desloque a licença para o mês vizinho.
func MonthlyHistogram(licenses []models.License, today time.Time) []MonthBucket {
	current := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, 0, HistogramMonths)
	index := make(map[[2]int]int, HistogramMonths)
	for i := HistogramMonths - 1; i >= 0; i-- {
		d := current.AddDate(0, -i, 0)
		short, full := monthLabels(d.Year(), d.Month())
		index[[2]int{d.Year(), int(d.Month())}] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Label:     short,
			FullLabel: full,
			Year:      d.Year(),
			Month:     int(d.Month()),
		})
	}

	for _, l := range licenses {
		y, m, ok := yearMonth(l.ExpirationDate)
		if !ok {
			continue
		}
		if i, found := index[[2]int{y, m}]; found {
			buckets[i].Count++
		}
	}
	return buckets
}

func yearMonth(date string) (year, month int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(date), "-", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}
