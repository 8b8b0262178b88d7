package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nilecart/storefront-backend/internal/domain/coupon"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
)

// Category is a catalog category record.
type Category struct {
	ID        string    `json:"id"`
	NameAR    string    `json:"name_ar"`
	NameEN    string    `json:"name_en"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog product record.
type Product struct {
	ID            string          `json:"id"`
	NameAR        string          `json:"name_ar"`
	NameEN        string          `json:"name_en"`
	DescriptionAR string          `json:"description_ar,omitempty"`
	DescriptionEN string          `json:"description_en,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Type          string          `json:"type,omitempty"`
	CategoryID    string          `json:"category_id"`
	Image         string          `json:"img"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Pricing returns the minimal product view the pricing core consumes.
func (p *Product) Pricing() pricing.Product {
	return pricing.Product{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		Quantity:   p.Quantity,
	}
}

// Purchasable reports whether listing surfaces should show the product as
// buyable. Out-of-stock products stay queryable but are excluded from
// purchasable listings.
func (p *Product) Purchasable() bool {
	return p.IsActive && p.Quantity > 0
}

// Offer is a promotional offer record. StartDate and EndDate are kept as
// the raw stored strings: parsing happens in Pricing with malformed values
// degrading to open bounds, so bad data stays visible to the audit tooling
// without ever breaking the pricing path.
type Offer struct {
	ID            string          `json:"id"`
	TitleAR       string          `json:"title_ar"`
	TitleEN       string          `json:"title_en"`
	DescriptionAR string          `json:"description_ar,omitempty"`
	DescriptionEN string          `json:"description_en,omitempty"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	StartDate     string          `json:"start_date,omitempty"`
	EndDate       string          `json:"end_date,omitempty"`
	IsActive      bool            `json:"is_active"`
	AppliesTo     string          `json:"applies_to"`
	CategoryID    string          `json:"category_id,omitempty"`
	ProductID     string          `json:"product_id,omitempty"`
}

// Pricing converts the record into the pricing core's offer type.
func (o *Offer) Pricing() pricing.Offer {
	return pricing.Offer{
		ID:            o.ID,
		Scope:         pricing.Scope(o.AppliesTo),
		ProductID:     o.ProductID,
		CategoryID:    o.CategoryID,
		DiscountType:  pricing.DiscountType(o.DiscountType),
		DiscountValue: o.DiscountValue,
		StartDate:     pricing.ParseTime(o.StartDate),
		EndDate:       pricing.ParseTime(o.EndDate),
		IsActive:      o.IsActive,
	}
}

// PricingOffers converts a full offer snapshot for the pricing core.
func PricingOffers(offers []Offer) []pricing.Offer {
	out := make([]pricing.Offer, len(offers))
	for i := range offers {
		out[i] = offers[i].Pricing()
	}
	return out
}

// Coupon is a checkout coupon record.
type Coupon struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	IsActive      bool             `json:"is_active"`
	StartDate     string           `json:"start_date,omitempty"`
	EndDate       string           `json:"end_date,omitempty"`
	DiscountType  string           `json:"discount_type"`
	DiscountValue decimal.Decimal  `json:"discount_value"`
	UsageLimit    *int             `json:"usage_limit,omitempty"`
	MinOrderValue *decimal.Decimal `json:"min_order_value,omitempty"`
}

// Domain converts the record into the coupon domain type.
func (c *Coupon) Domain() coupon.Coupon {
	return coupon.Coupon{
		ID:            c.ID,
		Code:          c.Code,
		IsActive:      c.IsActive,
		StartDate:     pricing.ParseTime(c.StartDate),
		EndDate:       pricing.ParseTime(c.EndDate),
		DiscountType:  pricing.DiscountType(c.DiscountType),
		DiscountValue: c.DiscountValue,
		UsageLimit:    c.UsageLimit,
		MinOrderValue: c.MinOrderValue,
	}
}

// Order is a submitted checkout order.
type Order struct {
	ID             string          `json:"id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	CustomerPhone  string          `json:"customer_phone"`
	Address1       string          `json:"address1"`
	Address2       string          `json:"address2,omitempty"`
	GovernorateKey string          `json:"governorate_key"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponID       string          `json:"coupon_id,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	Locale         string          `json:"locale"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []OrderItem     `json:"items,omitempty"`
}

// OrderItem is one line of a submitted order, priced at the snapshotted
// cart price.
type OrderItem struct {
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	NameAR    string          `json:"name_ar,omitempty"`
	NameEN    string          `json:"name_en,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Image     string          `json:"img,omitempty"`
}

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)
