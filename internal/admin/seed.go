package admin

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/backup"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

// O arquivo de seed tem o mesmo formato de um backup.
//
//go:embed seeds/companies.json
var seedJSON []byte

type SeedResult struct {
	CompaniesCreated int
	LicensesCreated  int
	Skipped          int
}

// Idempotente: cria se não existir; se já existir (mesmo id), ignora.
func Seed(ctx context.Context, s store.Store, now time.Time, log *slog.Logger) (SeedResult, error) {
	return seedFrom(ctx, s, seedJSON, now, log)
}

func seedFrom(ctx context.Context, s store.Store, raw []byte, now time.Time, log *slog.Logger) (SeedResult, error) {
	var res SeedResult
	b, err := backup.Parse(raw)
	if err != nil {
		return res, fmt.Errorf("seed file: %w", err)
	}
	now = now.UTC()

	for _, c := range b.Companies {
		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := s.GetCompany(ictx, c.ID)
		exists, err := found(err)
		if err == nil && !exists {
			c.CreatedAt, c.UpdatedAt = now, now
			err = s.SaveCompany(ictx, &c)
		}
		cancel()
		if err != nil {
			return res, fmt.Errorf("seed company %s: %w", c.ID, err)
		}
		if exists {
			log.Info("seed_company_exists", "id", c.ID)
			res.Skipped++
			continue
		}
		log.Info("seed_company_created", "id", c.ID, "name", c.Name)
		res.CompaniesCreated++
	}

	for _, l := range b.Licenses {
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := s.GetLicense(ictx, l.ID)
		exists, err := found(err)
		if err == nil && !exists {
			l.CreatedAt, l.UpdatedAt = now, now
			err = s.SaveLicense(ictx, &l)
		}
		cancel()
		if err != nil {
			return res, fmt.Errorf("seed license %s: %w", l.ID, err)
		}
		if exists {
			res.Skipped++
			continue
		}
		log.Info("seed_license_created", "id", l.ID, "number", l.Number)
		res.LicensesCreated++
	}

	log.Info("seed_done", "companies", res.CompaniesCreated, "licenses", res.LicensesCreated, "skipped", res.Skipped)
	return res, nil
}

// found traduz o erro de um Get: ErrNotFound vira (false, nil).
func found(err error) (bool, error) {
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
