package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
)

// Handler wires stock management to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type stockPayload struct {
	ItemID       string `json:"itemId" validate:"required,uuid"`
	NameEN       string `json:"nameEn"`
	OnHand       int    `json:"onHand" validate:"gte=0"`
	ReorderLevel int    `json:"reorderLevel" validate:"gte=0"`
}

// List returns all tracked stock items. ?low=true filters to items at or
// below their reorder level.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []StockItem
		err   error
	)
	if r.URL.Query().Get("low") == "true" {
		items, err = h.Svc.LowStock(r.Context())
	} else {
		items, err = h.Svc.List(r.Context())
	}
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory listing failed", nil)
		return
	}
	if items == nil {
		items = []StockItem{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// SetLevel creates or replaces a stock record.
func (h *Handler) SetLevel(w http.ResponseWriter, r *http.Request) {
	var payload stockPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
	}
	itemID, err := uuid.Parse(payload.ItemID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "itemId must be a uuid", nil)
		return
	}
	item, err := h.Svc.SetLevel(r.Context(), StockItem{
		ItemID:       itemID,
		NameEN:       payload.NameEN,
		OnHand:       payload.OnHand,
		ReorderLevel: payload.ReorderLevel,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "inventory update failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}
