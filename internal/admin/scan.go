package admin

import (
	"context"
	"log/slog"

	"github.com/Werneck0live/sanicontrol/internal/alerts"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

// ScanOnce roda uma varredura de vencimentos e sai; pensado para cron.
func ScanOnce(ctx context.Context, s store.Store, pub alerts.Publisher, log *slog.Logger) (alerts.Summary, error) {
	sc := alerts.NewScanner(s, pub, log)
	return sc.Scan(ctx)
}
