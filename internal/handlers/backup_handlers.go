package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Werneck0live/sanicontrol/internal/backup"
	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

// maxBackupBytes limita o corpo do restore.
const maxBackupBytes = 32 << 20

// Backup baixa o snapshot atual como arquivo JSON.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()

	now := h.now()
	b, err := backup.Create(ctx, h.Store, now)
	if err != nil {
		utils.InternalError(w, err)
		return
	}

	name := fmt.Sprintf("backup_sanicontrol_%s.json", now.UTC().Format("2006-01-02"))
	attachment(w, name)
	utils.WriteJSON(w, http.StatusOK, b)
}

// Restore substitui tudo pelo backup enviado no corpo. Responde
// {"restored": false} com 400 quando o arquivo é rejeitado.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBackupBytes))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]any{"restored": false, "error": err.Error()})
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	b, err := backup.Restore(ctx, h.Store, raw)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, backup.ErrInvalidBackup) {
			code = http.StatusBadRequest
		} else {
			h.Log.Error("restore_error", "err", err)
		}
		utils.WriteJSON(w, code, map[string]any{"restored": false, "error": err.Error()})
		return
	}

	h.Log.Info("backup_restored", "companies", len(b.Companies), "licenses", len(b.Licenses), "backup_ts", b.Timestamp)
	h.publishEvent(broker.Event{
		Type:    broker.DataRestored,
		Message: fmt.Sprintf("%d empresa(s), %d licença(s)", len(b.Companies), len(b.Licenses)),
	})
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"restored":  true,
		"companies": len(b.Companies),
		"licenses":  len(b.Licenses),
	})
}

// SystemData apaga empresas e licenças. As preferências ficam.
func (h *Handler) SystemData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	if err := h.Store.Clear(ctx); err != nil {
		utils.InternalError(w, err)
		return
	}
	h.Log.Warn("data_cleared")
	h.publishEvent(broker.Event{Type: broker.DataCleared})
	w.WriteHeader(http.StatusNoContent)
}
