package handlers

import (
	"context"
	"sync"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

// storeMock delega ao store.Memory, exceto quando um Fn é definido.
type storeMock struct {
	*store.Memory
	ListCompaniesFn func(ctx context.Context) ([]models.Company, error)
	SaveCompanyFn   func(ctx context.Context, c *models.Company) error
	SaveLicenseFn   func(ctx context.Context, l *models.License) error
	ReplaceAllFn    func(ctx context.Context, companies []models.Company, licenses []models.License) error
}

func newStoreMock() *storeMock { return &storeMock{Memory: store.NewMemory()} }

func (m *storeMock) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if m.ListCompaniesFn != nil {
		return m.ListCompaniesFn(ctx)
	}
	return m.Memory.ListCompanies(ctx)
}
func (m *storeMock) SaveCompany(ctx context.Context, c *models.Company) error {
	if m.SaveCompanyFn != nil {
		return m.SaveCompanyFn(ctx, c)
	}
	return m.Memory.SaveCompany(ctx, c)
}
func (m *storeMock) SaveLicense(ctx context.Context, l *models.License) error {
	if m.SaveLicenseFn != nil {
		return m.SaveLicenseFn(ctx, l)
	}
	return m.Memory.SaveLicense(ctx, l)
}
func (m *storeMock) ReplaceAll(ctx context.Context, companies []models.Company, licenses []models.License) error {
	if m.ReplaceAllFn != nil {
		return m.ReplaceAllFn(ctx, companies, licenses)
	}
	return m.Memory.ReplaceAll(ctx, companies, licenses)
}

type pubMock struct {
	PublishFn func(ctx context.Context, ev broker.Event) error
	CloseFn   func() error

	mu     sync.Mutex
	events []broker.Event
}

func (p *pubMock) Publish(ctx context.Context, ev broker.Event) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, ev)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

func (p *pubMock) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
