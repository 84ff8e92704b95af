package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/ruenthai/backend-pos/internal/common"
	"github.com/ruenthai/backend-pos/internal/drawer"
	"github.com/ruenthai/backend-pos/internal/obs"
	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Handler wires checkout to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Metrics  *obs.POSMetrics
}

type finalizePayload struct {
	Method   string `json:"method" validate:"required,oneof=cash card credit qr"`
	Tendered int64  `json:"tendered" validate:"gte=0"`
}

// Preview prices the current cart without committing anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	settlement, err := h.Svc.Preview(r.Context(), common.TerminalID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": settlement})
}

// Finalize settles the cart and creates the completed order.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	var payload finalizePayload
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
	o, err := h.Svc.FinalizeOrder(r.Context(), common.TerminalID(r), payload.Method, pricing.Money(payload.Tendered))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ObserveOrder(string(o.Payment.Kind), o.Total)
		h.Metrics.DrawerMovements.WithLabelValues("in").Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": o})
}

// Cancel abandons the pending settlement. Nothing is persisted during a
// preview, so the cart stays exactly as it was; emptying it is a separate,
// explicit action on the cart itself.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"cancelled": true}})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		common.JSONError(w, http.StatusConflict, "EMPTY_CART", "cannot settle an empty cart", nil)
	case errors.Is(err, payment.ErrUnknownMethod):
		common.JSONError(w, http.StatusBadRequest, "UNKNOWN_METHOD", err.Error(), nil)
	case errors.Is(err, payment.ErrInsufficientPayment):
		common.JSONError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_PAYMENT", err.Error(), nil)
	case errors.Is(err, drawer.ErrNoOpenShift):
		common.JSONError(w, http.StatusConflict, "NO_OPEN_SHIFT", "open a drawer shift before checkout", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
	}
}
