package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the resolved pricing for one product at one instant. It is
// derived, never stored; cart and wishlist lines snapshot its fields at
// add-time.
type Quote struct {
	BasePrice       decimal.Decimal
	SelectedOffer   *Offer // nil when no offer applies
	FinalPrice      decimal.Decimal
	DiscountPercent int
}

// Resolve picks the best live offer for the product and applies it to the
// product's price. An empty or nil offer snapshot is not an error, it just
// means no discount. Pure function of its inputs: identical inputs,
// including now, give identical quotes.
func Resolve(p Product, offers []Offer, now time.Time) Quote {
	base := p.Price
	o := BestOffer(p, offers, now)
	final, percent := Apply(base, o)
	return Quote{
		BasePrice:       base,
		SelectedOffer:   o,
		FinalPrice:      final,
		DiscountPercent: percent,
	}
}
