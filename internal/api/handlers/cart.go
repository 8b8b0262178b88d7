package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/cart"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// SessionHeader identifies the cart session. The client generates an
// opaque ID once and sends it on every cart request.
const SessionHeader = "X-Session-ID"

// CartManager holds one cart store per session. Stores are created on
// first use and live for the process lifetime.
type CartManager struct {
	mu     sync.Mutex
	stores map[string]*cart.Store
}

// NewCartManager creates an empty cart manager.
func NewCartManager() *CartManager {
	return &CartManager{stores: make(map[string]*cart.Store)}
}

// Get returns the store for the session, creating it if needed.
func (m *CartManager) Get(sessionID string) *cart.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[sessionID]
	if !ok {
		store = cart.NewStore()
		m.stores[sessionID] = store
	}
	return store
}

// CartHandler handles per-session cart and wishlist requests.
type CartHandler struct {
	*Base
	carts *CartManager
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(repo storage.Repository, carts *CartManager) *CartHandler {
	return &CartHandler{
		Base:  NewBase(repo),
		carts: carts,
	}
}

// session resolves the request's cart store, or writes a 400 when the
// session header is missing.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(SessionHeader+" header is required"))
		return nil, false
	}
	return h.carts.Get(sessionID), true
}

// snapshot prices the product at the current moment and freezes the
// result for the cart line.
func (h *CartHandler) snapshot(r *http.Request, productID string) (cart.Snapshot, error) {
	ctx := r.Context()

	product, err := h.repo.GetProduct(ctx, productID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	offers, err := h.repo.ListOffers(ctx)
	if err != nil {
		return cart.Snapshot{}, err
	}

	quote := pricing.Resolve(product.Pricing(), storage.PricingOffers(offers), time.Now())
	return cart.NewSnapshot(product.Pricing(), product.NameAR, product.NameEN, product.Image, quote), nil
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.CartAddRequest
	if err := DecodeJSON(r, &req); err != nil || req.ProductID == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("product_id is required"))
		return
	}

	snap, err := h.snapshot(r, req.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("product"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	store.Add(snap, req.Qty)
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// SetQty handles PUT /api/cart/items/{productID}.
func (h *CartHandler) SetQty(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productID")
	var req dto.CartQtyRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	store.SetQty(productID, req.Qty)
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// IncreaseQty handles POST /api/cart/items/{productID}/increase.
func (h *CartHandler) IncreaseQty(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}
	store.IncreaseQty(chi.URLParam(r, "productID"))
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// DecreaseQty handles POST /api/cart/items/{productID}/decrease.
func (h *CartHandler) DecreaseQty(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}
	store.DecreaseQty(chi.URLParam(r, "productID"))
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// RemoveItem handles DELETE /api/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}
	store.Remove(chi.URLParam(r, "productID"))
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}
	store.Clear()
	h.WriteJSON(w, http.StatusOK, toCartResponse(store))
}

// Wishlist handles GET /api/wishlist.
func (h *CartHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, toWishlistResponse(store))
}

// ToggleWishlist handles POST /api/wishlist - adds the product, or removes
// it when already present.
func (h *CartHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.WishlistToggleRequest
	if err := DecodeJSON(r, &req); err != nil || req.ProductID == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("product_id is required"))
		return
	}

	snap, err := h.snapshot(r, req.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("product"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	store.ToggleWishlist(snap)
	h.WriteJSON(w, http.StatusOK, toWishlistResponse(store))
}

func toCartLineResponse(snap cart.Snapshot, qty int) dto.CartLineResponse {
	return dto.CartLineResponse{
		ProductID:       snap.ProductID,
		NameAR:          snap.NameAR,
		NameEN:          snap.NameEN,
		Price:           snap.Price.InexactFloat64(),
		OriginalPrice:   snap.OriginalPrice.InexactFloat64(),
		AppliedOfferID:  snap.AppliedOfferID,
		DiscountPercent: snap.DiscountPercent,
		Image:           snap.Image,
		Qty:             qty,
	}
}

func toCartResponse(store *cart.Store) dto.CartResponse {
	lines := store.Lines()
	response := dto.CartResponse{
		Lines:    make([]dto.CartLineResponse, 0, len(lines)),
		Subtotal: store.Subtotal().InexactFloat64(),
	}
	for _, l := range lines {
		response.Lines = append(response.Lines, toCartLineResponse(l.Snapshot, l.Qty))
	}
	response.Count = len(response.Lines)
	return response
}

func toWishlistResponse(store *cart.Store) dto.WishlistResponse {
	items := store.Wishlist()
	response := dto.WishlistResponse{Items: make([]dto.CartLineResponse, 0, len(items))}
	for _, snap := range items {
		response.Items = append(response.Items, toCartLineResponse(snap, 0))
	}
	response.Count = len(response.Items)
	return response
}
