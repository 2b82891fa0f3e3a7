package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

var testToday = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *storeMock, *pubMock) {
	t.Helper()
	st := newStoreMock()
	pm := &pubMock{}
	h := New(st, pm, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Now = func() time.Time { return testToday }
	return h, st, pm
}

// serve passa pelo mux completo, como em produção.
func serve(h *Handler, method, target string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	mux := http.NewServeMux()
	h.Register(mux)
	req := httptest.NewRequest(method, target, rd)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json: %v\nbody=%s", err, rr.Body.String())
	}
	return v
}

func seedCompany(t *testing.T, st *storeMock, c models.Company) {
	t.Helper()
	if err := st.Memory.SaveCompany(context.Background(), &c); err != nil {
		t.Fatal(err)
	}
}

func seedLicense(t *testing.T, st *storeMock, l models.License) {
	t.Helper()
	if err := st.Memory.SaveLicense(context.Background(), &l); err != nil {
		t.Fatal(err)
	}
}

func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rr.Code != code {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, code, rr.Body.String())
	}
}
