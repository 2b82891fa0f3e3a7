package handlers

import (
	"net/http"

	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

// Dashboard devolve contadores e o histograma de 12 meses. Com ?company=
// tudo fica restrito àquela empresa.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	companies, licenses, err := h.loadAll(ctx)
	if err != nil {
		utils.InternalError(w, err)
		return
	}

	companyID := r.URL.Query().Get("company")
	if companyID != "" {
		var scoped []models.Company
		for _, c := range companies {
			if c.ID == companyID {
				scoped = append(scoped, c)
			}
		}
		if len(scoped) == 0 {
			utils.NotFound(w)
			return
		}
		companies = scoped
		licenses = license.ForCompany(licenses, companyID)
	}

	today := h.now()
	utils.WriteJSON(w, http.StatusOK, DashboardResponse{
		CompanyID:   companyID,
		Stats:       license.BuildStats(companies, licenses, today),
		Histogram:   license.MonthlyHistogram(licenses, today),
		GeneratedAt: today.UTC(),
	})
}
