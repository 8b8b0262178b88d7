// Package cart holds the cart and wishlist state container.
//
// Lines carry a snapshot of the resolved pricing taken at add-time: once a
// product is in the cart its price, original price, and offer metadata are
// frozen until the line is removed, even when the underlying offer later
// changes or expires. Quantity is the only mutable field, and only through
// the store's operations.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/nilecart/storefront-backend/internal/domain/pricing"
)

// Snapshot is the frozen product and pricing data captured when a product
// is added to the cart or wishlist.
type Snapshot struct {
	ProductID       string
	NameAR          string
	NameEN          string
	Price           decimal.Decimal // final price at add-time
	OriginalPrice   decimal.Decimal // base price at add-time
	AppliedOfferID  string          // empty when no offer applied
	DiscountType    pricing.DiscountType
	DiscountValue   decimal.Decimal
	DiscountPercent int
	Image           string
	StockCeiling    int // product stock at add-time; <1 means unknown, no ceiling
}

// Line is a cart entry: a snapshot plus the requested quantity. Wishlist
// entries are bare snapshots, the wishlist has no quantity.
type Line struct {
	Snapshot
	Qty int
}

// NewSnapshot builds a snapshot from a product and its resolved quote.
func NewSnapshot(p pricing.Product, nameAR, nameEN, image string, q pricing.Quote) Snapshot {
	s := Snapshot{
		ProductID:       p.ID,
		NameAR:          nameAR,
		NameEN:          nameEN,
		Price:           q.FinalPrice,
		OriginalPrice:   q.BasePrice,
		DiscountPercent: q.DiscountPercent,
		Image:           image,
		StockCeiling:    p.Quantity,
	}
	if q.SelectedOffer != nil {
		s.AppliedOfferID = q.SelectedOffer.ID
		s.DiscountType = q.SelectedOffer.DiscountType
		s.DiscountValue = q.SelectedOffer.DiscountValue
	}
	return s
}
