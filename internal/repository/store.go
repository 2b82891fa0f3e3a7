package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

const (
	companiesCollection   = "companies"
	licensesCollection    = "licenses"
	preferencesCollection = "preferences"
)

// Store implementa store.Store sobre MongoDB.
type Store struct {
	db          *mongo.Database
	Companies   *CompanyRepository
	Licenses    *LicenseRepository
	Preferences *PreferencesRepository
}

var _ store.Store = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	return &Store{
		db:          db,
		Companies:   NewCompanyRepository(db),
		Licenses:    NewLicenseRepository(db),
		Preferences: NewPreferencesRepository(db),
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	return s.Licenses.EnsureIndexes(ctx)
}

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.Companies.GetAll(ctx)
}

func (s *Store) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	return s.Companies.GetByID(ctx, id)
}

func (s *Store) SaveCompany(ctx context.Context, c *models.Company) error {
	return s.Companies.Save(ctx, c)
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return s.Companies.Delete(ctx, id)
}

func (s *Store) ListLicenses(ctx context.Context) ([]models.License, error) {
	return s.Licenses.GetAll(ctx)
}

func (s *Store) GetLicense(ctx context.Context, id string) (*models.License, error) {
	return s.Licenses.GetByID(ctx, id)
}

func (s *Store) SaveLicense(ctx context.Context, l *models.License) error {
	return s.Licenses.Save(ctx, l)
}

func (s *Store) DeleteLicense(ctx context.Context, id string) error {
	return s.Licenses.Delete(ctx, id)
}

func (s *Store) LoadPreferences(ctx context.Context) (models.Preferences, error) {
	return s.Preferences.Load(ctx)
}

func (s *Store) SavePreferences(ctx context.Context, p models.Preferences) error {
	return s.Preferences.Save(ctx, p)
}

// ReplaceAll recusa ids vazios ou repetidos antes de apagar: sem replica set
// não há transação para desfazer um InsertMany que falhe no meio.
func (s *Store) ReplaceAll(ctx context.Context, companies []models.Company, licenses []models.License) error {
	if err := store.CheckIDs(companies, licenses); err != nil {
		return err
	}
	return withTransaction(ctx, s.db.Client(), func(ctx context.Context) error {
		if err := s.clear(ctx); err != nil {
			return err
		}
		if len(companies) > 0 {
			docs := make([]interface{}, len(companies))
			for i := range companies {
				docs[i] = companies[i]
			}
			if _, err := s.Companies.coll.InsertMany(ctx, docs); err != nil {
				return err
			}
		}
		if len(licenses) > 0 {
			docs := make([]interface{}, len(licenses))
			for i := range licenses {
				docs[i] = licenses[i]
			}
			if _, err := s.Licenses.coll.InsertMany(ctx, docs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return withTransaction(ctx, s.db.Client(), s.clear)
}

func (s *Store) clear(ctx context.Context) error {
	if _, err := s.Licenses.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	_, err := s.Companies.coll.DeleteMany(ctx, bson.M{})
	return err
}

// withTransaction roda fn numa transação. Em Mongo standalone (sem replica
// set) o servidor recusa transações com IllegalOperation (20); nesse caso fn
// roda sem transação.
func withTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 20 {
		return fn(ctx)
	}
	return err
}
