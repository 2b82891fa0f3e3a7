package handlers

import (
	"net/http"

	"github.com/Werneck0live/sanicontrol/internal/models"
	"github.com/Werneck0live/sanicontrol/internal/utils"
)

func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		p, err := h.Store.LoadPreferences(ctx)
		if err != nil {
			utils.InternalError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var p models.Preferences
		if err := utils.DecodeStrict(r.Body, &p); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := validateDTO(p); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		if err := h.Store.SavePreferences(ctx, p); err != nil {
			utils.InternalError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, p)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
