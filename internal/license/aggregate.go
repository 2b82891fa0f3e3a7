package license

import (
	"time"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

type Counts struct {
	Active  int `json:"active"`
	Warning int `json:"warning"`
	Expired int `json:"expired"`
}

func (c Counts) Total() int { return c.Active + c.Warning + c.Expired }

// Of devolve a contagem de um estado.
func (c Counts) Of(s State) int {
	switch s {
	case Active:
		return c.Active
	case Warning:
		return c.Warning
	case Expired:
		return c.Expired
	}
	return 0
}

// Aggregate conta as licenças por estado. Total() == len(licenses) sempre.
func Aggregate(licenses []models.License, today time.Time) Counts {
	var c Counts
	for _, l := range licenses {
		switch StateOf(l, today) {
		case Active:
			c.Active++
		case Warning:
			c.Warning++
		default:
			c.Expired++
		}
	}
	return c
}

// ForCompany devolve uma nova fatia só com as licenças da empresa.
func ForCompany(licenses []models.License, companyID string) []models.License {
	out := make([]models.License, 0, len(licenses))
	for _, l := range licenses {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out
}

// Stats é o resumo exibido no topo do painel.
type Stats struct {
	TotalCompanies int `json:"totalCompanies"`
	TotalLicenses  int `json:"totalLicenses"`
	Counts
}

func BuildStats(companies []models.Company, licenses []models.License, today time.Time) Stats {
	return Stats{
		TotalCompanies: len(companies),
		TotalLicenses:  len(licenses),
		Counts:         Aggregate(licenses, today),
	}
}
