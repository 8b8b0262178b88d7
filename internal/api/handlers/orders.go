package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// OrdersHandler handles order lookup requests.
type OrdersHandler struct {
	*Base
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(repo storage.Repository) *OrdersHandler {
	return &OrdersHandler{
		Base: NewBase(repo),
	}
}

// Get handles GET /api/orders/{id} - returns a submitted order with its
// items.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("order ID is required"))
		return
	}

	order, err := h.repo.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("order"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}
