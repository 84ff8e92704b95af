package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
)

// Handler serves the order history read side.
type Handler struct {
	Store Store
}

// List returns recent orders, newest first. ?terminal= narrows to one
// terminal; the X-Terminal-ID header is deliberately ignored here so the
// back office can see the whole floor.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, perPage := common.ParsePagination(r, 20)
	orders, err := h.Store.ListOrders(r.Context(), r.URL.Query().Get("terminal"), perPage)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order listing failed", nil)
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": orders})
}

// Get returns one completed order by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "order id must be a uuid", nil)
		return
	}
	o, err := h.Store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order lookup failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": o})
}
