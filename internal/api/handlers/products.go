package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// ProductsHandler handles catalog product requests.
type ProductsHandler struct {
	*Base
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(repo storage.Repository) *ProductsHandler {
	return &ProductsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/products - returns products with resolved pricing.
// Supports ?category= to filter by category and ?purchasable=true to hide
// inactive or out-of-stock products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	offers, err := h.repo.ListOffers(ctx)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	category := r.URL.Query().Get("category")
	purchasableOnly := ParseBoolParam(r, "purchasable", false)
	limit := ParseIntParam(r, "limit", 0)

	now := time.Now()
	priced := storage.PricingOffers(offers)
	byID := offersByID(offers)

	response := dto.ProductListResponse{Products: []dto.ProductResponse{}}
	for i := range products {
		p := &products[i]
		if category != "" && p.CategoryID != category {
			continue
		}
		if purchasableOnly && !p.Purchasable() {
			continue
		}
		quote := pricing.Resolve(p.Pricing(), priced, now)
		response.Products = append(response.Products, toProductResponse(p, quote, byID))
		if limit > 0 && len(response.Products) >= limit {
			break
		}
	}
	response.Count = len(response.Products)

	h.WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/products/{id} - returns one product with resolved
// pricing.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("product ID is required"))
		return
	}

	product, err := h.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("product"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	offers, err := h.repo.ListOffers(ctx)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	quote := pricing.Resolve(product.Pricing(), storage.PricingOffers(offers), time.Now())
	h.WriteJSON(w, http.StatusOK, toProductResponse(product, quote, offersByID(offers)))
}

// offersByID indexes an offer snapshot for response building.
func offersByID(offers []storage.Offer) map[string]*storage.Offer {
	byID := make(map[string]*storage.Offer, len(offers))
	for i := range offers {
		byID[offers[i].ID] = &offers[i]
	}
	return byID
}

// toProductResponse converts a product and its resolved quote to an API
// response.
func toProductResponse(p *storage.Product, q pricing.Quote, byID map[string]*storage.Offer) dto.ProductResponse {
	response := dto.ProductResponse{
		ID:            p.ID,
		NameAR:        p.NameAR,
		NameEN:        p.NameEN,
		DescriptionAR: p.DescriptionAR,
		DescriptionEN: p.DescriptionEN,
		Price:         p.Price.InexactFloat64(),
		Quantity:      p.Quantity,
		Type:          p.Type,
		CategoryID:    p.CategoryID,
		Image:         p.Image,
		IsActive:      p.IsActive,
		Pricing: dto.PricingResponse{
			BasePrice:       q.BasePrice.InexactFloat64(),
			FinalPrice:      q.FinalPrice.InexactFloat64(),
			DiscountPercent: q.DiscountPercent,
		},
	}
	if q.SelectedOffer != nil {
		if record, ok := byID[q.SelectedOffer.ID]; ok {
			offer := toOfferResponse(record)
			response.Pricing.Offer = &offer
		}
	}
	return response
}

// toOfferResponse converts an offer record to an API response.
func toOfferResponse(o *storage.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:            o.ID,
		TitleAR:       o.TitleAR,
		TitleEN:       o.TitleEN,
		DiscountType:  o.DiscountType,
		DiscountValue: o.DiscountValue.InexactFloat64(),
		AppliesTo:     o.AppliesTo,
		ProductID:     o.ProductID,
		CategoryID:    o.CategoryID,
		StartDate:     o.StartDate,
		EndDate:       o.EndDate,
		IsActive:      o.IsActive,
	}
}
