package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	// lista completa; ?q= filtra por nome ou pelos dígitos do CNPJ
	case http.MethodGet:
		ctx, cancel := h.ctx(r)
		defer cancel()
		list, err := h.Store.ListCompanies(ctx)
		if err != nil {
			utils.InternalError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, filterCompanies(list, r.URL.Query().Get("q")))

	case http.MethodPost:
		var dto CompanyDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := validateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		now := h.now().UTC()
		c := models.Company{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
		dto.apply(&c)

		ctx, cancel := h.ctx(r)
		defer cancel()
		if err := h.Store.SaveCompany(ctx, &c); err != nil {
			utils.InternalError(w, err)
			return
		}

		h.publishEvent(companyEvent(broker.CompanyCreated, &c))
		utils.WriteJSON(w, http.StatusCreated, c)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) CompanyByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDFromPath(r.URL.Path, "companies")
	if !ok {
		utils.NotFound(w)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		c, err := h.Store.GetCompany(ctx, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, c)

	// PUT = replace; id e createdAt são preservados
	case http.MethodPut:
		var dto CompanyDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := validateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		current, err := h.Store.GetCompany(ctx, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		newDoc := models.Company{ID: id, CreatedAt: current.CreatedAt, UpdatedAt: h.now().UTC()}
		dto.apply(&newDoc)

		if err := h.Store.SaveCompany(ctx, &newDoc); err != nil {
			utils.InternalError(w, err)
			return
		}

		h.publishEvent(companyEvent(broker.CompanyUpdated, &newDoc))
		utils.WriteJSON(w, http.StatusOK, newDoc)

	// remove a empresa e, em cascata, as licenças dela
	case http.MethodDelete:
		c, err := h.Store.GetCompany(ctx, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		if err := h.Store.DeleteCompany(ctx, id); err != nil {
			h.storeError(w, err)
			return
		}

		h.publishEvent(companyEvent(broker.CompanyDeleted, c))
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func filterCompanies(list []models.Company, q string) []models.Company {
	q = strings.TrimSpace(q)
	if q == "" {
		return list
	}
	term := strings.ToLower(q)
	out := make([]models.Company, 0, len(list))
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name), term) || utils.MatchCNPJ(c.CNPJ, q) {
			out = append(out, c)
		}
	}
	return out
}

func companyEvent(typ string, c *models.Company) broker.Event {
	return broker.Event{
		Type:      typ,
		Entity:    "company",
		ID:        c.ID,
		CompanyID: c.ID,
		Name:      c.Name,
	}
}

// storeError traduz ErrNotFound em 404; o resto é 500.
func (h *Handler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(w)
		return
	}
	h.Log.Error("store_error", "err", err)
	utils.InternalError(w, err)
}
