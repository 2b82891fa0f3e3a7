package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/report"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var defaultTitles = map[license.State]string{
	license.Expired: "Licenças Vencidas",
	license.Warning: "A Vencer (Próximos 30 dias)",
	license.Active:  "Licenças Regulares",
}

// Reports gera o relatório de licenças: ?format=json|pdf|xlsx,
// ?status= restringe a um estado e ?title= troca o título.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	params := r.URL.Query()

	var filter *license.State
	if s := params.Get("status"); s != "" {
		st, err := license.ParseState(s)
		if err != nil {
			utils.BadRequest(w, "invalid status")
			return
		}
		filter = &st
	}

	format := strings.ToLower(params.Get("format"))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "pdf" && format != "xlsx" {
		utils.BadRequest(w, "format must be one of [json pdf xlsx]")
		return
	}

	title := strings.TrimSpace(params.Get("title"))
	if title == "" {
		title = "Relatório Geral"
		if filter != nil {
			title = defaultTitles[*filter]
		}
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	companies, licenses, err := h.loadAll(ctx)
	if err != nil {
		utils.InternalError(w, err)
		return
	}

	now := h.now()
	rows := report.Project(companies, licenses, filter, now)

	// renderiza em memória para que um erro ainda vire 500 com JSON
	var buf bytes.Buffer
	var contentType string
	switch format {
	case "json":
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"title":       title,
			"generatedAt": now.UTC(),
			"rows":        rows,
		})
		return
	case "pdf":
		contentType = contentTypePDF
		err = report.WritePDF(&buf, rows, report.Meta{Firm: h.Firm, Title: title, GeneratedAt: now})
	case "xlsx":
		contentType = contentTypeXLSX
		err = report.WriteXLSX(&buf, rows)
	}
	if err != nil {
		h.Log.Error("report_render_error", "format", format, "err", err)
		utils.InternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	attachment(w, report.FileName(title, format, now))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
