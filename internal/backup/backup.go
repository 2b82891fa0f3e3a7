// Package backup gera e restaura o arquivo de cópia de segurança:
// {companies, licenses, timestamp, version}.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

const Version = "1.0"

var ErrInvalidBackup = errors.New("invalid backup file")

type Backup struct {
	Companies []models.Company `json:"companies"`
	Licenses  []models.License `json:"licenses"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version"`
}

// Create tira um retrato completo do Store.
func Create(ctx context.Context, s store.Store, now time.Time) (*Backup, error) {
	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	licenses, err := s.ListLicenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	if companies == nil {
		companies = []models.Company{}
	}
	if licenses == nil {
		licenses = []models.License{}
	}
	return &Backup{
		Companies: companies,
		Licenses:  licenses,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Version:   Version,
	}, nil
}

// Parse confere que companies e licenses são arrays JSON de registros e que
// cada id está preenchido e não se repete. O conteúdo dos campos não é
// validado.
func Parse(raw []byte) (*Backup, error) {
	var envelope struct {
		Companies json.RawMessage `json:"companies"`
		Licenses  json.RawMessage `json:"licenses"`
		Timestamp string          `json:"timestamp"`
		Version   string          `json:"version"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if !isArray(envelope.Companies) || !isArray(envelope.Licenses) {
		return nil, fmt.Errorf("%w: companies and licenses must be arrays", ErrInvalidBackup)
	}

	b := Backup{Timestamp: envelope.Timestamp, Version: envelope.Version}
	if err := json.Unmarshal(envelope.Companies, &b.Companies); err != nil {
		return nil, fmt.Errorf("%w: companies: %v", ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(envelope.Licenses, &b.Licenses); err != nil {
		return nil, fmt.Errorf("%w: licenses: %v", ErrInvalidBackup, err)
	}
	if err := store.CheckIDs(b.Companies, b.Licenses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return &b, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Restore substitui todo o conteúdo do Store pelo backup. Se o arquivo for
// inválido nada é gravado e o erro envolve ErrInvalidBackup.
func Restore(ctx context.Context, s store.Store, raw []byte) (*Backup, error) {
	b, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.ReplaceAll(ctx, b.Companies, b.Licenses); err != nil {
		return nil, fmt.Errorf("replace store: %w", err)
	}
	return b, nil
}
