// Package report achata licenças + empresas em linhas tabulares e as
// renderiza em PDF e XLSX.
package report

import (
	"strings"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/models"
)

// Unknown substitui os dados da empresa quando companyId não encontra dono.
const Unknown = "N/A"

// Row é o único contrato entregue aos renderizadores.
type Row struct {
	CompanyName    string        `json:"companyName"`
	CNPJ           string        `json:"cnpj"`
	Contact        string        `json:"contact"`
	Email          string        `json:"email"`
	LicenseNumber  string        `json:"licenseNumber"`
	Authority      string        `json:"authority"`
	IssueDate      string        `json:"issueDate"`
	ExpirationDate string        `json:"expirationDate"`
	Status         license.State `json:"status"`
	StatusLabel    string        `json:"statusLabel"`
	Notes          string        `json:"notes"`
}

// Project filtra por estado (quando filter != nil), junta cada licença à sua
// empresa e formata as datas. A ordem das licenças é preservada.
func Project(companies []models.Company, licenses []models.License, filter *license.State, today time.Time) []Row {
	byID := make(map[string]models.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	rows := make([]Row, 0, len(licenses))
	for _, l := range licenses {
		st := license.StateOf(l, today)
		if filter != nil && st != *filter {
			continue
		}

		row := Row{
			CompanyName:    Unknown,
			CNPJ:           Unknown,
			Contact:        Unknown,
			Email:          Unknown,
			LicenseNumber:  l.Number,
			Authority:      l.Authority,
			IssueDate:      FormatDate(l.IssueDate),
			ExpirationDate: FormatDate(l.ExpirationDate),
			Status:         st,
			StatusLabel:    st.Label(),
			Notes:          l.Notes,
		}
		if c, ok := byID[l.CompanyID]; ok {
			row.CompanyName = orUnknown(c.Name)
			row.CNPJ = orUnknown(c.CNPJ)
			row.Contact = orUnknown(c.ContactName)
			row.Email = orUnknown(c.Email)
		}
		rows = append(rows, row)
	}
	return rows
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// FormatDate converte YYYY-MM-DD em DD/MM/YYYY recortando a string.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
