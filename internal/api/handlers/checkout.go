package handlers

import (
	"errors"
	"net/http"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/application/checkout"
	"github.com/nilecart/storefront-backend/internal/domain/shipping"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// CheckoutHandler handles order submission.
type CheckoutHandler struct {
	*Base
	service *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(repo storage.Repository, service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		Base:    NewBase(repo),
		service: service,
	}
}

// Submit handles POST /api/checkout.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	items := make([]checkout.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, checkout.Item{ProductID: item.ProductID, Qty: item.Qty})
	}

	order, err := h.service.Submit(r.Context(), checkout.Request{
		Customer: checkout.Customer{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
		},
		Address: checkout.Address{
			Governorate: req.Address.Governorate,
			Address1:    req.Address.Address1,
			Address2:    req.Address.Address2,
		},
		Items:      items,
		CouponCode: req.CouponCode,
		Notes:      req.Notes,
		Currency:   req.Currency,
		Locale:     req.Locale,
	})
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, toOrderResponse(order))
}

// writeSubmitError maps checkout failures to API error responses.
func (h *CheckoutHandler) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyOrder),
		errors.Is(err, checkout.ErrInvalidCustomer),
		errors.Is(err, checkout.ErrInvalidAddress):
		h.WriteError(w, http.StatusUnprocessableEntity, dto.ValidationError(err.Error()))
	case errors.Is(err, checkout.ErrCouponRejected):
		h.WriteError(w, http.StatusUnprocessableEntity, dto.CouponRejectedError(err.Error()))
	case errors.Is(err, shipping.ErrUnknownGovernorate):
		h.WriteError(w, http.StatusUnprocessableEntity, dto.ValidationError(err.Error()))
	case errors.Is(err, storage.ErrProductNotFound):
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("product"))
	default:
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
	}
}

// toOrderResponse converts a stored order to the confirmation response.
func toOrderResponse(order *storage.Order) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:             order.ID,
		Status:         order.Status,
		Subtotal:       order.Subtotal.InexactFloat64(),
		CouponDiscount: order.CouponDiscount.InexactFloat64(),
		ShippingFee:    order.ShippingFee.InexactFloat64(),
		Total:          order.Total.InexactFloat64(),
		Currency:       order.Currency,
		Governorate:    order.GovernorateKey,
		CreatedAt:      order.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Items:          make([]dto.OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			NameAR:    item.NameAR,
			NameEN:    item.NameEN,
			Price:     item.Price.InexactFloat64(),
			Qty:       item.Qty,
		})
	}
	return response
}
