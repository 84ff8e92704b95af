package analytics

import (
	"net/http"
	"time"

	"github.com/ruenthai/backend-pos/internal/common"
)

// Handler serves sales reports.
type Handler struct {
	Svc *Service
}

// Daily returns the summary for ?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	day := h.Svc.now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "date must be YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}
	summary, err := h.Svc.Daily(r.Context(), day)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "report failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}
