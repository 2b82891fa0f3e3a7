package handlers

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/store"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

type Publisher interface {
	Publish(ctx context.Context, ev broker.Event) error
	Close() error
}

type Handler struct {
	Store   store.Store
	Pub     Publisher // nil quando os eventos estão desligados
	Log     *slog.Logger
	Now     func() time.Time
	Timeout time.Duration
	Firm    string // cabeçalho dos relatórios PDF
}

func New(s store.Store, pub Publisher, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Store:   s,
		Pub:     pub,
		Log:     log,
		Now:     time.Now,
		Timeout: 5 * time.Second,
		Firm:    "C & E CONTABILIDADE",
	}
}

// Register pendura todas as rotas da API no mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/api/companies", h.Companies)
	mux.HandleFunc("/api/companies/", h.CompanyByID)
	mux.HandleFunc("/api/licenses", h.Licenses)
	mux.HandleFunc("/api/licenses/", h.LicenseByID)
	mux.HandleFunc("/api/dashboard", h.Dashboard)
	mux.HandleFunc("/api/reports", h.Reports)
	mux.HandleFunc("/api/preferences", h.Preferences)
	mux.HandleFunc("/api/backup", h.Backup)
	mux.HandleFunc("/api/backup/restore", h.Restore)
	mux.HandleFunc("/api/system/data", h.SystemData)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// garantir que a requisição venha no padrão /api/{resource}/{id}
func parseIDFromPath(path, resource string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == resource && parts[2] != "" {
		return parts[2], true
	}
	return "", false
}

func (h *Handler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.Timeout)
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// publishEvent nunca falha a requisição: erro de fila só vai para o log.
func (h *Handler) publishEvent(ev broker.Event) {
	if h.Pub == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = h.now().UTC()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.Pub.Publish(ctx, ev); err != nil {
		h.Log.Warn("event_publish_error", "type", ev.Type, "id", ev.ID, "err", err)
	}
}

// attachment marca a resposta como download. Nomes com acento saem
// codificados (RFC 2231).
func attachment(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}
