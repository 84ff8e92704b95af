package hr

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
)

// TimesheetHandler wires clock punches to HTTP.
type TimesheetHandler struct {
	Sheet *Timesheet
}

// ClockIn opens a time entry for the employee in the URL.
func (h *TimesheetHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	entry, err := h.Sheet.ClockIn(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": entry})
}

// ClockOut closes the employee's open time entry.
func (h *TimesheetHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	entry, err := h.Sheet.ClockOut(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entry})
}

// Entries lists the employee's punches for ?month=YYYY-MM, defaulting to the
// current month.
func (h *TimesheetHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("month")
	var start time.Time
	if raw == "" {
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.ParseInLocation("2006-01", raw, time.UTC)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "month must be YYYY-MM", nil)
			return
		}
		start = parsed
	}
	entries, err := h.Sheet.Entries(r.Context(), id, start, start.AddDate(0, 1, 0))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []TimeEntry{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}

func (h *TimesheetHandler) employeeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "employeeID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "employee id must be a uuid", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *TimesheetHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "employee not found", nil)
	case errors.Is(err, ErrAlreadyClockedIn):
		common.JSONError(w, http.StatusConflict, "ALREADY_CLOCKED_IN", "employee already has an open entry", nil)
	case errors.Is(err, ErrNotClockedIn):
		common.JSONError(w, http.StatusConflict, "NOT_CLOCKED_IN", "employee has no open entry", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "timesheet error", nil)
	}
}
