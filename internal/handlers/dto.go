package handlers

import (
	"strings"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/models"
)

// somente os campos do contrato; id e datas de controle são do servidor
type CompanyDTO struct {
	Name        string `json:"name" validate:"required,max=200"`
	CNPJ        string `json:"cnpj" validate:"max=40"`
	City        string `json:"city" validate:"max=120"`
	ContactName string `json:"contactName" validate:"max=120"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=40"`
}

func (d CompanyDTO) apply(c *models.Company) {
	c.Name = strings.TrimSpace(d.Name)
	c.CNPJ = strings.TrimSpace(d.CNPJ)
	c.City = strings.TrimSpace(d.City)
	c.ContactName = strings.TrimSpace(d.ContactName)
	c.Email = strings.TrimSpace(d.Email)
	c.Phone = strings.TrimSpace(d.Phone)
}

type LicenseDTO struct {
	CompanyID      string `json:"companyId" validate:"required"`
	Number         string `json:"number" validate:"required,max=80"`
	IssueDate      string `json:"issueDate" validate:"required,isodate"`
	ExpirationDate string `json:"expirationDate" validate:"required,isodate"`
	Authority      string `json:"authority" validate:"required,max=120"`
	Notes          string `json:"notes" validate:"max=2000"`
}

func (d LicenseDTO) apply(l *models.License) {
	l.CompanyID = d.CompanyID
	l.Number = strings.TrimSpace(d.Number)
	l.IssueDate = strings.TrimSpace(d.IssueDate)
	l.ExpirationDate = strings.TrimSpace(d.ExpirationDate)
	l.Authority = strings.TrimSpace(d.Authority)
	l.Notes = strings.TrimSpace(d.Notes)
}

// LicenseView é a licença como a listagem mostra: com empresa e status.
type LicenseView struct {
	models.License
	CompanyName   string        `json:"companyName"`
	Status        license.State `json:"status"`
	StatusLabel   string        `json:"statusLabel"`
	DaysRemaining *int          `json:"daysRemaining,omitempty"`
}

func newLicenseView(l models.License, companyName string, today time.Time) LicenseView {
	st := license.StateOf(l, today)
	v := LicenseView{
		License:     l,
		CompanyName: companyName,
		Status:      st,
		StatusLabel: st.Label(),
	}
	if days, ok := license.DaysRemainingOf(l, today); ok {
		v.DaysRemaining = &days
	}
	return v
}

type DashboardResponse struct {
	CompanyID   string                `json:"companyId,omitempty"`
	Stats       license.Stats         `json:"stats"`
	Histogram   []license.MonthBucket `json:"histogram"`
	GeneratedAt time.Time             `json:"generatedAt"`
}
