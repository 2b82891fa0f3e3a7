package handlers

import (
	"net/http"
	"testing"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

func TestDashboard(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedLicenseFixture(t, st)

	rr := serve(h, http.MethodGet, "/api/dashboard", nil)
	wantStatus(t, rr, http.StatusOK)
	got := decode[DashboardResponse](t, rr)

	s := got.Stats
	if s.TotalCompanies != 2 || s.TotalLicenses != 4 {
		t.Fatalf("totals: %#v", s)
	}
	if s.Active != 1 || s.Warning != 2 || s.Expired != 1 {
		t.Fatalf("counts: %#v", s.Counts)
	}
	if len(got.Histogram) != 12 {
		t.Fatalf("histogram len=%d", len(got.Histogram))
	}
	last := got.Histogram[11]
	if last.Label != "Jun/24" || last.Count != 2 { // l1 (06-10) e l4 (06-15)
		t.Fatalf("current month bucket: %#v", last)
	}
}

func TestDashboard_ScopedByCompany(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedLicenseFixture(t, st)

	rr := serve(h, http.MethodGet, "/api/dashboard?company=c1", nil)
	wantStatus(t, rr, http.StatusOK)
	got := decode[DashboardResponse](t, rr)
	if got.CompanyID != "c1" || got.Stats.TotalCompanies != 1 || got.Stats.TotalLicenses != 2 {
		t.Fatalf("got %#v", got.Stats)
	}
	if got.Stats.Expired != 1 || got.Stats.Warning != 1 || got.Stats.Active != 0 {
		t.Fatalf("counts: %#v", got.Stats.Counts)
	}

	wantStatus(t, serve(h, http.MethodGet, "/api/dashboard?company=ghost", nil), http.StatusNotFound)
}

func TestDashboard_Empty(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := serve(h, http.MethodGet, "/api/dashboard", nil)
	wantStatus(t, rr, http.StatusOK)
	got := decode[DashboardResponse](t, rr)
	if got.Stats.Total() != 0 || got.Stats.TotalCompanies != 0 {
		t.Fatalf("got %#v", got.Stats)
	}
	for _, b := range got.Histogram {
		if b.Count != 0 {
			t.Fatalf("bucket %s should be zero", b.Label)
		}
	}
}

func TestDashboard_MethodNotAllowed(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedCompany(t, st, models.Company{ID: "c1"})
	wantStatus(t, serve(h, http.MethodPost, "/api/dashboard", `{}`), http.StatusMethodNotAllowed)
}
