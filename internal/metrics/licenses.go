package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

// licenseCollector lê o Store a cada scrape; os estados nunca são
// persistidos, então são recalculados na hora.
type licenseCollector struct {
	store   store.Store
	now     func() time.Time
	timeout time.Duration
	log     *slog.Logger

	licenses  *prometheus.Desc
	companies *prometheus.Desc
}

func (m *Metrics) TrackLicenses(s store.Store, now func() time.Time, log *slog.Logger) {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	m.Registry.MustRegister(&licenseCollector{
		store:   s,
		now:     now,
		timeout: 5 * time.Second,
		log:     log,
		licenses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "licenses"),
			"Licenças por estado de vencimento.",
			[]string{"state"}, nil,
		),
		companies: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "companies"),
			"Empresas cadastradas.",
			nil, nil,
		),
	})
}

func (c *licenseCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.licenses
	ch <- c.companies
}

func (c *licenseCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	licenses, err := c.store.ListLicenses(ctx)
	if err != nil {
		c.log.Warn("metrics_collect_error", "err", err)
		ch <- prometheus.NewInvalidMetric(c.licenses, err)
		return
	}
	companies, err := c.store.ListCompanies(ctx)
	if err != nil {
		c.log.Warn("metrics_collect_error", "err", err)
		ch <- prometheus.NewInvalidMetric(c.companies, err)
		return
	}

	counts := license.Aggregate(licenses, c.now())
	for _, st := range license.States {
		ch <- prometheus.MustNewConstMetric(c.licenses, prometheus.GaugeValue, float64(counts.Of(st)), string(st))
	}
	ch <- prometheus.MustNewConstMetric(c.companies, prometheus.GaugeValue, float64(len(companies)))
}
