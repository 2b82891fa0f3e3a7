package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/license"
	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/store"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

var errUnknownCompany = errors.New("company not found")

func (h *Handler) Licenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	// ?q= número ou nome da empresa, ?status= ACTIVE|WARNING|EXPIRED, ?company= id
	case http.MethodGet:
		params := r.URL.Query()
		q := license.Query{Text: params.Get("q"), CompanyID: params.Get("company")}
		if s := params.Get("status"); s != "" {
			st, err := license.ParseState(s)
			if err != nil {
				utils.BadRequest(w, "invalid status")
				return
			}
			q.State = st
		}

		ctx, cancel := h.ctx(r)
		defer cancel()
		companies, licenses, err := h.loadAll(ctx)
		if err != nil {
			utils.InternalError(w, err)
			return
		}

		names := companyNames(companies)
		today := h.now()
		found := license.Search(licenses, names, q, today)
		views := make([]LicenseView, 0, len(found))
		for _, l := range found {
			views = append(views, newLicenseView(l, names[l.CompanyID], today))
		}
		utils.WriteJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var dto LicenseDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := validateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		ctx, cancel := h.ctx(r)
		defer cancel()
		company, err := h.companyOf(ctx, dto.CompanyID)
		if err != nil {
			h.licenseCompanyError(w, err)
			return
		}

		now := h.now().UTC()
		l := models.License{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
		dto.apply(&l)
		if err := h.Store.SaveLicense(ctx, &l); err != nil {
			utils.InternalError(w, err)
			return
		}

		view := newLicenseView(l, company.Name, h.now())
		h.publishEvent(licenseEvent(broker.LicenseCreated, view))
		utils.WriteJSON(w, http.StatusCreated, view)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) LicenseByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDFromPath(r.URL.Path, "licenses")
	if !ok {
		utils.NotFound(w)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		l, err := h.Store.GetLicense(ctx, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		// licença órfã continua visível, só sem nome de empresa
		var name string
		if c, err := h.Store.GetCompany(ctx, l.CompanyID); err == nil {
			name = c.Name
		}
		utils.WriteJSON(w, http.StatusOK, newLicenseView(*l, name, h.now()))

	case http.MethodPut:
		var dto LicenseDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := validateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		current, err := h.Store.GetLicense(ctx, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		company, err := h.companyOf(ctx, dto.CompanyID)
		if err != nil {
			h.licenseCompanyError(w, err)
			return
		}

		newDoc := models.License{ID: id, CreatedAt: current.CreatedAt, UpdatedAt: h.now().UTC()}
		dto.apply(&newDoc)
		if err := h.Store.SaveLicense(ctx, &newDoc); err != nil {
			utils.InternalError(w, err)
			return
		}

		view := newLicenseView(newDoc, company.Name, h.now())
		h.publishEvent(licenseEvent(broker.LicenseUpdated, view))
		utils.WriteJSON(w, http.StatusOK, view)

	case http.MethodDelete:
		l, err := h.Store.GetLicense(ctx, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		if err := h.Store.DeleteLicense(ctx, id); err != nil {
			h.storeError(w, err)
			return
		}

		h.publishEvent(broker.Event{
			Type:      broker.LicenseDeleted,
			Entity:    "license",
			ID:        l.ID,
			CompanyID: l.CompanyID,
			Name:      l.Number,
		})
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) loadAll(ctx context.Context) ([]models.Company, []models.License, error) {
	companies, err := h.Store.ListCompanies(ctx)
	if err != nil {
		return nil, nil, err
	}
	licenses, err := h.Store.ListLicenses(ctx)
	if err != nil {
		return nil, nil, err
	}
	return companies, licenses, nil
}

// companyOf exige que a empresa referenciada pela licença exista.
func (h *Handler) companyOf(ctx context.Context, id string) (*models.Company, error) {
	c, err := h.Store.GetCompany(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errUnknownCompany
	}
	return c, err
}

func (h *Handler) licenseCompanyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownCompany) {
		utils.BadRequest(w, err.Error())
		return
	}
	h.storeError(w, err)
}

func companyNames(companies []models.Company) map[string]string {
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names
}

func licenseEvent(typ string, v LicenseView) broker.Event {
	ev := broker.Event{
		Type:          typ,
		Entity:        "license",
		ID:            v.ID,
		CompanyID:     v.CompanyID,
		Name:          v.Number,
		State:         string(v.Status),
		DaysRemaining: v.DaysRemaining,
	}
	if v.CompanyName != "" {
		ev.Message = v.Number + " - " + v.CompanyName
	}
	return ev
}
