package license

import (
	"strings"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

// Query filtra a listagem de licenças. Campos vazios não filtram.
type Query struct {
	Text      string // número da licença ou nome da empresa
	CompanyID string
	State     State
}

// Search aplica a Query. companyNames mapeia id da empresa -> nome.
func Search(licenses []models.License, companyNames map[string]string, q Query, today time.Time) []models.License {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]models.License, 0, len(licenses))
	for _, l := range licenses {
		if q.CompanyID != "" && l.CompanyID != q.CompanyID {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(l.Number), text) &&
			!strings.Contains(strings.ToLower(companyNames[l.CompanyID]), text) {
			continue
		}
		if q.State != "" && StateOf(l, today) != q.State {
			continue
		}
		out = append(out, l)
	}
	return out
}
