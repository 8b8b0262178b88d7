package handlers

import (
	"net/http"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// CategoriesHandler handles catalog category requests.
type CategoriesHandler struct {
	*Base
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(repo storage.Repository) *CategoriesHandler {
	return &CategoriesHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.CategoryListResponse{Categories: make([]dto.CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		response.Categories = append(response.Categories, dto.CategoryResponse{
			ID:     c.ID,
			NameAR: c.NameAR,
			NameEN: c.NameEN,
		})
	}
	response.Count = len(response.Categories)

	h.WriteJSON(w, http.StatusOK, response)
}
