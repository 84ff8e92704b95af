package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/common"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Handler wires the catalog service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type itemPayload struct {
	CategoryID string `json:"categoryId" validate:"required,uuid"`
	NameEN     string `json:"nameEn" validate:"required_without=NameTH"`
	NameTH     string `json:"nameTh" validate:"required_without=NameEN"`
	Price      int64  `json:"price" validate:"gte=0"`
	Available  bool   `json:"available"`
	SortOrder  int    `json:"sortOrder"`
}

type categoryPayload struct {
	NameEN    string `json:"nameEn" validate:"required_without=NameTH"`
	NameTH    string `json:"nameTh" validate:"required_without=NameEN"`
	SortOrder int    `json:"sortOrder"`
	Active    bool   `json:"active"`
}

// Categories lists menu categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.Categories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": categories})
}

// Items lists menu items, optionally filtered by ?category=.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id", nil)
			return
		}
		categoryID = &id
	}
	items, err := h.Svc.Items(r.Context(), categoryID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Item returns a single menu item.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	item, err := h.Svc.Item(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

// CreateItem adds a menu item (back-office CMS).
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	item, err := h.Svc.CreateItem(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": item})
}

// UpdateItem replaces a menu item's fields.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	in, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	item, err := h.Svc.UpdateItem(r.Context(), id, in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

// DeleteItem removes a menu item.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	if err := h.Svc.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory adds a menu category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	category, err := h.Svc.CreateCategory(r.Context(), CategoryInput{
		NameEN:    payload.NameEN,
		NameTH:    payload.NameTH,
		SortOrder: payload.SortOrder,
		Active:    payload.Active,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": category})
}

// UpdateCategory replaces a category's fields.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id", nil)
		return
	}
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	}
	category, err := h.Svc.UpdateCategory(r.Context(), id, CategoryInput{
		NameEN:    payload.NameEN,
		NameTH:    payload.NameTH,
		SortOrder: payload.SortOrder,
		Active:    payload.Active,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": category})
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (ItemInput, bool) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return ItemInput{}, false
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return ItemInput{}, false
	}
	categoryID, err := uuid.Parse(payload.CategoryID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid category id", nil)
		return ItemInput{}, false
	}
	return ItemInput{
		CategoryID: categoryID,
		NameEN:     payload.NameEN,
		NameTH:     payload.NameTH,
		Price:      pricing.Money(payload.Price),
		Available:  payload.Available,
		SortOrder:  payload.SortOrder,
	}, true
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "not found", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog error", nil)
	}
}
