package store

import (
	"context"
	"sync"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

// Memory guarda tudo em fatias protegidas por mutex, na ordem de inserção.
type Memory struct {
	mu        sync.RWMutex
	companies []models.Company
	licenses  []models.License
	prefs     *models.Preferences
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListCompanies(_ context.Context) ([]models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Company{}, m.companies...), nil
}

func (m *Memory) GetCompany(_ context.Context, id string) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.companies {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SaveCompany(_ context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.companies {
		if m.companies[i].ID == c.ID {
			m.companies[i] = *c
			return nil
		}
	}
	m.companies = append(m.companies, *c)
	return nil
}

func (m *Memory) DeleteCompany(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.companies[:0:0]
	for _, c := range m.companies {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.companies = kept

	licenses := m.licenses[:0:0]
	for _, l := range m.licenses {
		if l.CompanyID != id {
			licenses = append(licenses, l)
		}
	}
	m.licenses = licenses
	return nil
}

func (m *Memory) ListLicenses(_ context.Context) ([]models.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.License{}, m.licenses...), nil
}

func (m *Memory) GetLicense(_ context.Context, id string) (*models.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.licenses {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SaveLicense(_ context.Context, l *models.License) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.licenses {
		if m.licenses[i].ID == l.ID {
			m.licenses[i] = *l
			return nil
		}
	}
	m.licenses = append(m.licenses, *l)
	return nil
}

func (m *Memory) DeleteLicense(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.licenses[:0:0]
	for _, l := range m.licenses {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.licenses = kept
	return nil
}

func (m *Memory) LoadPreferences(_ context.Context) (models.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.prefs == nil {
		return models.DefaultPreferences(), nil
	}
	return *m.prefs, nil
}

func (m *Memory) SavePreferences(_ context.Context, p models.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = &p
	return nil
}

func (m *Memory) ReplaceAll(_ context.Context, companies []models.Company, licenses []models.License) error {
	if err := CheckIDs(companies, licenses); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies = append([]models.Company{}, companies...)
	m.licenses = append([]models.License{}, licenses...)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies = nil
	m.licenses = nil
	return nil
}
