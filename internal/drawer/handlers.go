package drawer

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/ruenthai/backend-pos/internal/common"
	"github.com/ruenthai/backend-pos/internal/obs"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Handler wires the drawer ledger to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Metrics  *obs.POSMetrics
}

type openPayload struct {
	OpeningBalance int64  `json:"openingBalance" validate:"gte=0"`
	Cashier        string `json:"cashier"`
}

type withdrawPayload struct {
	Amount int64  `json:"amount" validate:"gt=0"`
	Note   string `json:"note"`
}

type closePayload struct {
	CountedCash int64 `json:"countedCash" validate:"gte=0"`
}

// Open starts a shift for the requesting terminal.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var payload openPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	shift, err := h.Svc.OpenShift(r.Context(), common.TerminalID(r), payload.Cashier, pricing.Money(payload.OpeningBalance))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ShiftsOpen.Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": shift})
}

// Summary returns the open shift with recomputed balance and totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Svc.Summarize(r.Context(), common.TerminalID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}

// Withdraw records a manual cash withdrawal against the open shift.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var payload withdrawPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	movement, err := h.Svc.RecordWithdrawal(r.Context(), common.TerminalID(r), pricing.Money(payload.Amount), payload.Note)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.DrawerMovements.WithLabelValues("out").Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": movement})
}

// Close ends the open shift with the counted cash amount.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	var payload closePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	shift, err := h.Svc.CloseShift(r.Context(), common.TerminalID(r), pricing.Money(payload.CountedCash))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ShiftsOpen.Dec()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": shift})
}

// History lists recent shifts for the terminal.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	_, perPage := common.ParsePagination(r, 20)
	shifts, err := h.Svc.History(r.Context(), common.TerminalID(r), perPage)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": shifts})
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrShiftOpen):
		common.JSONError(w, http.StatusConflict, "SHIFT_OPEN", "a shift is already open for this terminal", nil)
	case errors.Is(err, ErrNoOpenShift):
		common.JSONError(w, http.StatusConflict, "NO_OPEN_SHIFT", "no shift is open for this terminal", nil)
	case errors.Is(err, ErrInvalidAmount):
		common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error(), nil)
	case errors.Is(err, ErrInsufficientFunds):
		common.JSONError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "drawer error", nil)
	}
}
