package alerts

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

type recorder struct {
	events []broker.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev broker.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func newScanner(t *testing.T, pub Publisher) *Scanner {
	t.Helper()
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveCompany(ctx, &models.Company{ID: "c1", Name: "Padaria"}))
	for _, l := range []models.License{
		{ID: "A", CompanyID: "c1", Number: "ALV-1", ExpirationDate: "2024-05-01"},
		{ID: "B", CompanyID: "c1", Number: "ALV-2", ExpirationDate: "2024-06-15"},
		{ID: "C", CompanyID: "c2", Number: "ALV-3", ExpirationDate: "2024-07-10"},
		{ID: "D", CompanyID: "c1", Number: "ALV-4", ExpirationDate: "2024-08-01"},
	} {
		l := l
		require.NoError(t, m.SaveLicense(ctx, &l))
	}

	s := NewScanner(m, pub, slog.Default())
	s.Now = func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestScan_PublishesWarningAndExpired(t *testing.T) {
	rec := &recorder{}
	sum, err := newScanner(t, rec).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, license.Counts{Active: 1, Warning: 2, Expired: 1}, sum.Counts)
	assert.Equal(t, 3, sum.Published)
	require.Len(t, rec.events, 3)

	expired := rec.events[0]
	assert.Equal(t, broker.LicenseExpired, expired.Type)
	assert.Equal(t, "A", expired.ID)
	assert.Equal(t, "ALV-1", expired.Name)
	assert.Equal(t, "license", expired.Entity)
	require.NotNil(t, expired.DaysRemaining)
	assert.Equal(t, -45, *expired.DaysRemaining)
	assert.Equal(t, "Licença ALV-1 (Padaria) vencida há 45 dia(s)", expired.Message)

	today := rec.events[1]
	assert.Equal(t, broker.LicenseExpiring, today.Type)
	assert.Equal(t, "Licença ALV-2 (Padaria) vence hoje", today.Message)

	orphan := rec.events[2]
	assert.Equal(t, "ALV-3", orphan.Name)
	assert.Equal(t, 25, *orphan.DaysRemaining)
	assert.Equal(t, "Licença ALV-3 (empresa desconhecida) vence em 25 dia(s)", orphan.Message)
}

func TestScan_PublishFailureIsCounted(t *testing.T) {
	sum, err := newScanner(t, &recorder{err: errors.New("broker down")}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Published)
	assert.Equal(t, 3, sum.Failed)
}

func TestScan_WithoutPublisher(t *testing.T) {
	sum, err := newScanner(t, nil).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total())
	assert.Zero(t, sum.Published)
}
