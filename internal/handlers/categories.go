package handlers

import (
	"net/http"
	"strings"

	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/models"
)

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// categoryNameTaken reports whether the user already has a category with
// the given normalized name, excluding excludeID.
func (h *Handlers) categoryNameTaken(r *http.Request, userID, name, excludeID string) (bool, error) {
	categories, err := h.store.ListCategories(r.Context(), userID)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// CreateCategory adds a named, typed label for the user. Names are
// normalized to lowercase and unique per user.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !models.ValidType(req.Type) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	taken, err := h.categoryNameTaken(r, userID, name, "")
	if err != nil {
		h.internalError(w, err)
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "Category "+name+" already exists")
		return
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   req.Type,
	}
	if err := h.store.CreateCategory(r.Context(), category); err != nil {
		h.logger.Error("CreateCategory failed", "user_id", userID, "error", err)
		h.internalError(w, err)
		return
	}

	h.logger.Info("Category created", "user_id", userID, "category_id", category.ID, "name", name)
	writeSuccess(w, http.StatusCreated, category)
}

// ListCategories returns all of the user's categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	categories, err := h.store.ListCategories(r.Context(), userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, categories)
}

// RenameCategory updates a category and cascades the new name onto every
// transaction of the user that referenced the old one.
func (h *Handlers) RenameCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !models.ValidType(req.Type) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	taken, err := h.categoryNameTaken(r, userID, name, id)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "Category "+name+" already exists")
		return
	}

	category, err := h.store.RenameCategory(r.Context(), userID, id, name, req.Type)
	if err != nil {
		h.storeError(w, err, "Category not found")
		return
	}

	h.logger.Info("Category renamed", "user_id", userID, "category_id", id, "name", name)
	writeSuccess(w, http.StatusOK, category)
}

// DeleteCategory reassigns the user's affected transactions to
// "uncategorized" and removes the category. A missing or unowned ID
// answers 404, never a silent success.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	if err := h.store.DeleteCategory(r.Context(), userID, id); err != nil {
		h.storeError(w, err, "Category not found")
		return
	}

	h.logger.Info("Category deleted", "user_id", userID, "category_id", id)
	writeMessage(w, http.StatusOK, "Category removed and transactions updated")
}
