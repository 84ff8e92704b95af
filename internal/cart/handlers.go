package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Handler wires the cart service to HTTP. The terminal id comes from the
// X-Terminal-ID header; each terminal sees only its own cart.
type Handler struct {
	Svc    *Service
	TaxBps int
}

// Get returns the cart contents with a settlement preview.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	terminal := common.TerminalID(r)
	var lines []Line
	err := h.Svc.With(terminal, func(c *Cart) error {
		lines = c.Lines()
		return nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	items := make([]pricing.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, pricing.Item{Qty: l.Qty, UnitPrice: l.UnitPrice})
	}
	summary := pricing.Compute(items, h.TaxBps)
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"terminal": terminal,
			"lines":    lines,
			"pricing": map[string]any{
				"subtotal": summary.Subtotal,
				"tax":      summary.Tax,
				"total":    summary.Total,
			},
		},
	})
}

// AddItem adds one unit of a menu item to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	itemID, err := uuid.Parse(payload.ItemID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	if err := h.Svc.AddItem(r.Context(), common.TerminalID(r), itemID); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

// UpdateLine adjusts a line quantity by the supplied delta.
func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	var payload struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if payload.Delta == 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "delta must be non-zero", nil)
		return
	}
	if err := h.Svc.ChangeQuantity(common.TerminalID(r), itemID, payload.Delta); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

// RemoveLine drops a line from the cart.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	if err := h.Svc.RemoveItem(common.TerminalID(r), itemID); err != nil {
		h.writeError(w, err)
		return
	}
	h.Get(w, r)
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Clear(common.TerminalID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "menu item not found", nil)
	case errors.Is(err, ErrUnavailable):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNAVAILABLE", "menu item unavailable", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart error", nil)
	}
}
