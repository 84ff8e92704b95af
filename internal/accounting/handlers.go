package accounting

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Handler wires expense bookkeeping to HTTP.
type Handler struct {
	Svc *Service
}

type expensePayload struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	IncurredOn  string `json:"incurredOn"`
}

// Record books an expense. incurredOn is an optional YYYY-MM-DD date; it
// defaults to today.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	in := Input{
		Category:    payload.Category,
		Description: payload.Description,
		Amount:      pricing.Money(payload.Amount),
	}
	if payload.IncurredOn != "" {
		day, err := time.ParseInLocation("2006-01-02", payload.IncurredOn, time.UTC)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "incurredOn must be YYYY-MM-DD", nil)
			return
		}
		in.IncurredOn = day
	}
	e, err := h.Svc.Record(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": e})
}

// Delete removes an expense booked by mistake.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid expense id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

// List returns expenses for the month given by ?month=YYYY-MM, defaulting to
// the current month.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	start, end, err := monthRange(r.URL.Query().Get("month"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "month must be YYYY-MM", nil)
		return
	}
	expenses, err := h.Svc.List(r.Context(), start, end)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if expenses == nil {
		expenses = []Expense{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": expenses})
}

// Summary returns the monthly roll-up for ?month=YYYY-MM.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start, _, err := monthRange(r.URL.Query().Get("month"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "month must be YYYY-MM", nil)
		return
	}
	summary, err := h.Svc.Monthly(r.Context(), start)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}

func monthRange(raw string) (time.Time, time.Time, error) {
	var start time.Time
	if raw == "" {
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.ParseInLocation("2006-01", raw, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	return start, start.AddDate(0, 1, 0), nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "expense not found", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "accounting operation failed", nil)
	}
}
