package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// PricingResponse is the resolved price of a product at request time.
type PricingResponse struct {
	BasePrice       float64        `json:"base_price"`
	FinalPrice      float64        `json:"final_price"`
	DiscountPercent int            `json:"discount_percent"`
	Offer           *OfferResponse `json:"offer,omitempty"`
}

// ProductResponse represents a product in API responses, with its pricing
// resolved against the current offer snapshot.
type ProductResponse struct {
	ID            string          `json:"id"`
	NameAR        string          `json:"name_ar"`
	NameEN        string          `json:"name_en"`
	DescriptionAR string          `json:"description_ar,omitempty"`
	DescriptionEN string          `json:"description_en,omitempty"`
	Price         float64         `json:"price"`
	Quantity      int             `json:"quantity"`
	Type          string          `json:"type,omitempty"`
	CategoryID    string          `json:"category_id"`
	Image         string          `json:"img,omitempty"`
	IsActive      bool            `json:"is_active"`
	Pricing       PricingResponse `json:"pricing"`
}

// ProductListResponse is returned when listing or searching products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// CategoryResponse represents a catalog category.
type CategoryResponse struct {
	ID     string `json:"id"`
	NameAR string `json:"name_ar"`
	NameEN string `json:"name_en"`
}

// CategoryListResponse is returned when listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Count      int                `json:"count"`
}

// OfferResponse represents a promotional offer.
type OfferResponse struct {
	ID            string  `json:"id"`
	TitleAR       string  `json:"title_ar,omitempty"`
	TitleEN       string  `json:"title_en,omitempty"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	AppliesTo     string  `json:"applies_to"`
	ProductID     string  `json:"product_id,omitempty"`
	CategoryID    string  `json:"category_id,omitempty"`
	StartDate     string  `json:"start_date,omitempty"`
	EndDate       string  `json:"end_date,omitempty"`
	IsActive      bool    `json:"is_active"`
}

// OfferListResponse is returned when listing offers.
type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
	Count  int             `json:"count"`
}

// DealResponse pairs a product with its deal-of-the-week offer.
type DealResponse struct {
	Product ProductResponse `json:"product"`
	Offer   OfferResponse   `json:"offer"`
}

// DealListResponse is returned by the deals endpoint.
type DealListResponse struct {
	Deals []DealResponse `json:"deals"`
	Count int            `json:"count"`
}

// CartLineResponse is one cart line with its add-time price snapshot.
type CartLineResponse struct {
	ProductID       string  `json:"product_id"`
	NameAR          string  `json:"name_ar"`
	NameEN          string  `json:"name_en"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	AppliedOfferID  string  `json:"applied_offer_id,omitempty"`
	DiscountPercent int     `json:"discount_percent"`
	Image           string  `json:"img,omitempty"`
	Qty             int     `json:"qty"`
}

// CartResponse is the full cart state for a session.
type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal float64            `json:"subtotal"`
	Count    int                `json:"count"`
}

// WishlistResponse is the wishlist state for a session.
type WishlistResponse struct {
	Items []CartLineResponse `json:"items"`
	Count int                `json:"count"`
}

// GovernorateResponse is one shipping destination and its fee.
type GovernorateResponse struct {
	Key    string  `json:"key"`
	NameAR string  `json:"name_ar"`
	NameEN string  `json:"name_en"`
	Fee    float64 `json:"fee"`
}

// ShippingResponse lists all shipping destinations.
type ShippingResponse struct {
	Currency     string                `json:"currency"`
	Governorates []GovernorateResponse `json:"governorates"`
}

// OrderItemResponse is one line of a submitted order.
type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	NameAR    string  `json:"name_ar,omitempty"`
	NameEN    string  `json:"name_en,omitempty"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// OrderResponse is the order confirmation returned by checkout.
type OrderResponse struct {
	ID             string              `json:"id"`
	Status         string              `json:"status"`
	Subtotal       float64             `json:"subtotal"`
	CouponDiscount float64             `json:"coupon_discount"`
	ShippingFee    float64             `json:"shipping_fee"`
	Total          float64             `json:"total"`
	Currency       string              `json:"currency"`
	Governorate    string              `json:"governorate"`
	CreatedAt      string              `json:"created_at"`
	Items          []OrderItemResponse `json:"items"`
}
