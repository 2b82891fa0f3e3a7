// Package alerts varre as licenças e publica um aviso para cada uma que está
// a vencer ou vencida.
package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

type Publisher interface {
	Publish(ctx context.Context, ev broker.Event) error
}

type Summary struct {
	license.Counts
	Published int `json:"published"`
	Failed    int `json:"failed"`
}

type Scanner struct {
	Store store.Store
	Pub   Publisher // opcional
	Log   *slog.Logger
	Now   func() time.Time
}

func NewScanner(s store.Store, pub Publisher, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{Store: s, Pub: pub, Log: log.With("cmp", "alerts"), Now: time.Now}
}

// Scan classifica todas as licenças agora e publica os avisos. Falha de
// publicação só é contada e logada.
func (s *Scanner) Scan(ctx context.Context) (Summary, error) {
	now := s.Now()

	licenses, err := s.Store.ListLicenses(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list licenses: %w", err)
	}
	companies, err := s.Store.ListCompanies(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list companies: %w", err)
	}
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}

	sum := Summary{Counts: license.Aggregate(licenses, now)}
	if s.Pub == nil {
		s.Log.Info("alert_scan_done", "active", sum.Active, "warning", sum.Warning, "expired", sum.Expired, "published", 0)
		return sum, nil
	}

	for _, l := range licenses {
		st := license.StateOf(l, now)
		if st == license.Active {
			continue
		}

		ev := broker.Event{
			Type:      broker.LicenseExpiring,
			Entity:    "license",
			ID:        l.ID,
			CompanyID: l.CompanyID,
			Name:      l.Number,
			State:     string(st),
			Timestamp: now.UTC(),
		}
		if st == license.Expired {
			ev.Type = broker.LicenseExpired
		}
		if days, ok := license.DaysRemainingOf(l, now); ok {
			ev.DaysRemaining = &days
		}
		ev.Message = message(l.Number, names[l.CompanyID], st, ev.DaysRemaining)

		if err := s.Pub.Publish(ctx, ev); err != nil {
			sum.Failed++
			s.Log.Warn("alert_publish_error", "license_id", l.ID, "err", err)
			continue
		}
		sum.Published++
	}

	s.Log.Info("alert_scan_done",
		"active", sum.Active, "warning", sum.Warning, "expired", sum.Expired,
		"published", sum.Published, "failed", sum.Failed,
	)
	return sum, nil
}

func message(number, company string, st license.State, days *int) string {
	if company == "" {
		company = "empresa desconhecida"
	}
	switch {
	case days == nil:
		return fmt.Sprintf("Licença %s (%s) com data de vencimento inválida", number, company)
	case st == license.Expired:
		return fmt.Sprintf("Licença %s (%s) vencida há %d dia(s)", number, company, -*days)
	case *days == 0:
		return fmt.Sprintf("Licença %s (%s) vence hoje", number, company)
	default:
		return fmt.Sprintf("Licença %s (%s) vence em %d dia(s)", number, company, *days)
	}
}

// Run repete Scan a cada interval até ctx ser cancelado.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Scan(ctx); err != nil {
				s.Log.Error("alert_scan_error", "err", err)
			}
		}
	}
}
