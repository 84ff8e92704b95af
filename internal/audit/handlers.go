package audit

import (
	"net/http"

	"github.com/ruenthai/backend-pos/internal/common"
)

// Handler exposes the audit trail read side.
type Handler struct {
	Svc *Service
}

// List returns recent audit entries, newest first. Supports ?entity= and
// ?per_page= filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, perPage := common.ParsePagination(r, 50)
	entries, err := h.Svc.List(r.Context(), r.URL.Query().Get("entity"), perPage)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "audit listing failed", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}
