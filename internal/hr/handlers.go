package hr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
)

// Handler wires the staff roster to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type employeePayload struct {
	Name   string `json:"name" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=cashier manager"`
	Active bool   `json:"active"`
}

// List returns the roster; ?active=true narrows to active staff.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Svc.List(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "roster listing failed", nil)
		return
	}
	if employees == nil {
		employees = []Employee{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": employees})
}

// Get returns one employee.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "employeeID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "employee id must be a uuid", nil)
		return
	}
	e, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": e})
}

// Create adds an employee to the roster.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	e, err := h.Svc.Create(r.Context(), Input{Name: payload.Name, Role: payload.Role, Active: payload.Active})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": e})
}

// Update edits an existing employee.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "employeeID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "employee id must be a uuid", nil)
		return
	}
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	e, err := h.Svc.Update(r.Context(), id, Input{Name: payload.Name, Role: payload.Role, Active: payload.Active})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": e})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (employeePayload, bool) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return payload, false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return payload, false
		}
	}
	return payload, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "employee not found", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "roster error", nil)
	}
}
