// Package store define o contrato de persistência de empresas, licenças e
// preferências: leitura da coleção inteira, upsert por id e remoção por id.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidIDs = errors.New("missing or repeated id")
)

type Store interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	// SaveCompany substitui o registro com o mesmo id ou insere um novo.
	SaveCompany(ctx context.Context, c *models.Company) error
	// DeleteCompany remove a empresa e todas as suas licenças.
	DeleteCompany(ctx context.Context, id string) error

	ListLicenses(ctx context.Context) ([]models.License, error)
	GetLicense(ctx context.Context, id string) (*models.License, error)
	SaveLicense(ctx context.Context, l *models.License) error
	DeleteLicense(ctx context.Context, id string) error

	// LoadPreferences devolve models.DefaultPreferences quando nada foi salvo.
	LoadPreferences(ctx context.Context) (models.Preferences, error)
	SavePreferences(ctx context.Context, p models.Preferences) error

	// ReplaceAll troca as duas coleções de uma vez (restauração de backup).
	ReplaceAll(ctx context.Context, companies []models.Company, licenses []models.License) error
	// Clear apaga empresas e licenças; as preferências ficam.
	Clear(ctx context.Context) error
}

// CheckIDs exige ids preenchidos e únicos em cada coleção. ReplaceAll chama
// antes de apagar qualquer coisa.
func CheckIDs(companies []models.Company, licenses []models.License) error {
	seen := make(map[string]struct{}, len(companies))
	for i, c := range companies {
		if err := checkID(seen, c.ID); err != nil {
			return fmt.Errorf("company #%d: %w", i, err)
		}
	}
	seen = make(map[string]struct{}, len(licenses))
	for i, l := range licenses {
		if err := checkID(seen, l.ID); err != nil {
			return fmt.Errorf("license #%d: %w", i, err)
		}
	}
	return nil
}

func checkID(seen map[string]struct{}, id string) error {
	if id == "" {
		return ErrInvalidIDs
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%w: %q", ErrInvalidIDs, id)
	}
	seen[id] = struct{}{}
	return nil
}
