package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

/*
RODAR TODOS OS TESTES:

go test -v ./internal/handlers -count=1
*/

func TestCompanies_List(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedCompany(t, st, models.Company{ID: "c1", Name: "Padaria Pão Quente", CNPJ: "11.222.333/0001-81"})
	seedCompany(t, st, models.Company{ID: "c2", Name: "Mercado Central", CNPJ: "44.555.666/0001-00"})

	rr := serve(h, http.MethodGet, "/api/companies", nil)
	wantStatus(t, rr, http.StatusOK)
	if got := decode[[]models.Company](t, rr); len(got) != 2 {
		t.Fatalf("want 2 companies, got %d", len(got))
	}
}

func TestCompanies_List_Search(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedCompany(t, st, models.Company{ID: "c1", Name: "Padaria Pão Quente", CNPJ: "11.222.333/0001-81"})
	seedCompany(t, st, models.Company{ID: "c2", Name: "Mercado Central", CNPJ: "44.555.666/0001-00"})

	cases := []struct {
		q    string
		want string
	}{
		{"padaria", "c1"},
		{"CENTRAL", "c2"},
		{"11222333", "c1"}, // dígitos casam com o CNPJ formatado
		{"555.666", "c2"},
	}
	for _, c := range cases {
		rr := serve(h, http.MethodGet, "/api/companies?q="+c.q, nil)
		wantStatus(t, rr, http.StatusOK)
		got := decode[[]models.Company](t, rr)
		if len(got) != 1 || got[0].ID != c.want {
			t.Fatalf("q=%q: got %#v; want only %s", c.q, got, c.want)
		}
	}
}

func TestCompanies_List_Empty(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := serve(h, http.MethodGet, "/api/companies", nil)
	wantStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("want [], got %s", rr.Body.String())
	}
}

func TestCompanies_List_StoreError(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.ListCompaniesFn = func(context.Context) ([]models.Company, error) { return nil, errors.New("boom") }

	rr := serve(h, http.MethodGet, "/api/companies", nil)
	wantStatus(t, rr, http.StatusInternalServerError)
}

func TestCompanies_MethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := serve(h, http.MethodDelete, "/api/companies", nil)
	wantStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestCompanies_Create_OK(t *testing.T) {
	h, st, pm := newTestHandler(t)

	rr := serve(h, http.MethodPost, "/api/companies", map[string]string{
		"name":        "  Padaria Pão Quente ",
		"cnpj":        "11.222.333/0001-81",
		"city":        "Campinas",
		"contactName": "Maria",
		"email":       "maria@padaria.com.br",
		"phone":       "(19) 99999-0000",
	})
	wantStatus(t, rr, http.StatusCreated)

	got := decode[models.Company](t, rr)
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Fatalf("id should be a uuid, got %q", got.ID)
	}
	if got.Name != "Padaria Pão Quente" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}
	if !got.CreatedAt.Equal(testToday) || !got.UpdatedAt.Equal(testToday) {
		t.Fatalf("timestamps: %v %v", got.CreatedAt, got.UpdatedAt)
	}
	if _, err := st.GetCompany(context.Background(), got.ID); err != nil {
		t.Fatalf("company not stored: %v", err)
	}
	if types := pm.types(); len(types) != 1 || types[0] != broker.CompanyCreated {
		t.Fatalf("events=%v", types)
	}
}

func TestCompanies_Create_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name":  `{"cnpj":"1"}`,
		"bad email":     `{"name":"ACME","email":"not-an-email"}`,
		"unknown field": `{"name":"ACME","foo":1}`,
		"trailing json": `{"name":"ACME"}{"name":"B"}`,
		"empty body":    ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h, _, pm := newTestHandler(t)
			rr := serve(h, http.MethodPost, "/api/companies", body)
			wantStatus(t, rr, http.StatusBadRequest)
			if len(pm.types()) != 0 {
				t.Fatalf("no event expected, got %v", pm.types())
			}
		})
	}
}

func TestCompanies_Create_ErrorMessageUsesJSONNames(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := serve(h, http.MethodPost, "/api/companies", `{"email":"x"}`)
	wantStatus(t, rr, http.StatusBadRequest)
	body := rr.Body.String()
	if !strings.Contains(body, "name is required") || !strings.Contains(body, "email must be a valid e-mail") {
		t.Fatalf("unexpected error body: %s", body)
	}
}

func TestCompanies_Create_StoreError(t *testing.T) {
	h, st, pm := newTestHandler(t)
	st.SaveCompanyFn = func(context.Context, *models.Company) error { return errors.New("boom") }

	rr := serve(h, http.MethodPost, "/api/companies", map[string]string{"name": "ACME"})
	wantStatus(t, rr, http.StatusInternalServerError)
	if len(pm.types()) != 0 {
		t.Fatalf("no event expected on failure")
	}
}

func TestCompanies_Create_PublishErrorIsNotFatal(t *testing.T) {
	h, _, pm := newTestHandler(t)
	pm.PublishFn = func(context.Context, broker.Event) error { return errors.New("queue down") }

	rr := serve(h, http.MethodPost, "/api/companies", map[string]string{"name": "ACME"})
	wantStatus(t, rr, http.StatusCreated)
}

func TestCompanies_Create_WithoutPublisher(t *testing.T) {
	h, _, _ := newTestHandler(t)
	h.Pub = nil
	rr := serve(h, http.MethodPost, "/api/companies", map[string]string{"name": "ACME"})
	wantStatus(t, rr, http.StatusCreated)
}

func TestCompanyByID_Get(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedCompany(t, st, models.Company{ID: "c1", Name: "ACME"})

	rr := serve(h, http.MethodGet, "/api/companies/c1", nil)
	wantStatus(t, rr, http.StatusOK)
	if got := decode[models.Company](t, rr); got.Name != "ACME" {
		t.Fatalf("got %#v", got)
	}

	wantStatus(t, serve(h, http.MethodGet, "/api/companies/nope", nil), http.StatusNotFound)
	wantStatus(t, serve(h, http.MethodGet, "/api/companies/c1/extra", nil), http.StatusNotFound)
}

func TestCompanyByID_Put_Replaces(t *testing.T) {
	h, st, pm := newTestHandler(t)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	seedCompany(t, st, models.Company{ID: "c1", Name: "ACME", City: "Campinas", Phone: "123", CreatedAt: created})

	rr := serve(h, http.MethodPut, "/api/companies/c1", map[string]string{"name": "ACME Ltda"})
	wantStatus(t, rr, http.StatusOK)

	got, err := st.GetCompany(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "ACME Ltda" || got.City != "" || got.Phone != "" {
		t.Fatalf("PUT must replace the whole record, got %#v", got)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(testToday) {
		t.Fatalf("timestamps: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
	if types := pm.types(); len(types) != 1 || types[0] != broker.CompanyUpdated {
		t.Fatalf("events=%v", types)
	}
}

func TestCompanyByID_Put_NotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := serve(h, http.MethodPut, "/api/companies/nope", map[string]string{"name": "ACME"})
	wantStatus(t, rr, http.StatusNotFound)
}

func TestCompanyByID_Delete_Cascades(t *testing.T) {
	h, st, pm := newTestHandler(t)
	seedCompany(t, st, models.Company{ID: "c1", Name: "ACME"})
	seedCompany(t, st, models.Company{ID: "c2", Name: "Outra"})
	seedLicense(t, st, models.License{ID: "l1", CompanyID: "c1", ExpirationDate: "2025-01-01"})
	seedLicense(t, st, models.License{ID: "l2", CompanyID: "c2", ExpirationDate: "2025-01-01"})

	rr := serve(h, http.MethodDelete, "/api/companies/c1", nil)
	wantStatus(t, rr, http.StatusNoContent)

	if _, err := st.GetCompany(context.Background(), "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("company still there: %v", err)
	}
	if _, err := st.GetLicense(context.Background(), "l1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("license of deleted company still there: %v", err)
	}
	if _, err := st.GetLicense(context.Background(), "l2"); err != nil {
		t.Fatalf("unrelated license removed: %v", err)
	}
	if types := pm.types(); len(types) != 1 || types[0] != broker.CompanyDeleted {
		t.Fatalf("events=%v", types)
	}

	wantStatus(t, serve(h, http.MethodDelete, "/api/companies/c1", nil), http.StatusNotFound)
}

func TestCompanyByID_MethodNotAllowed(t *testing.T) {
	h, st, _ := newTestHandler(t)
	seedCompany(t, st, models.Company{ID: "c1", Name: "ACME"})
	wantStatus(t, serve(h, http.MethodPatch, "/api/companies/c1", `{}`), http.StatusMethodNotAllowed)
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := serve(h, http.MethodGet, "/healthz", nil)
	wantStatus(t, rr, http.StatusOK)
	if got := decode[map[string]string](t, rr); got["status"] != "ok" {
		t.Fatalf("got %v", got)
	}
}
