package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ruenthai/backend-pos/internal/common"
)

// Handler wires the restaurant profile to HTTP.
type Handler struct {
	Svc *Service
}

// Get returns the current profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Get(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not load settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": p})
}

// Update replaces the profile in full.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	saved, err := h.Svc.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not save settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": saved})
}
