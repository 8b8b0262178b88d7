// Package pricing implements promotional offer resolution and discount
// pricing for the storefront.
//
// Given a product and a snapshot of promotional offers, the package picks
// the single applicable offer under a deterministic ranking and computes
// the discounted price:
//
//	quote = Resolve(product, offers, now)
//	quote.FinalPrice <= quote.BasePrice, always
//
// Everything here is pure: no I/O, no clock reads (callers inject now),
// and no errors. Malformed inputs degrade to "no discount" rather than
// failing the render path.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scope says what an offer applies to: one product, one category, or the
// whole catalog.
type Scope string

const (
	ScopeProduct  Scope = "product"
	ScopeCategory Scope = "category"
	ScopeAll      Scope = "all"
)

// DiscountType is how an offer's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Offer is a time-bounded promotional discount rule. Offers are created and
// edited by the management surface; this package only reads immutable
// snapshots of them.
type Offer struct {
	ID            string
	Scope         Scope
	ProductID     string // set when Scope == ScopeProduct
	CategoryID    string // set when Scope == ScopeCategory
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	StartDate     *time.Time // nil = always already started
	EndDate       *time.Time // nil = never expires
	IsActive      bool
}

// Product is the minimal product view the pricing core needs.
type Product struct {
	ID         string
	CategoryID string
	Price      decimal.Decimal
	Quantity   int
}

// ParseTime parses a stored timestamp, returning nil for empty or malformed
// values. A bad date makes the bound unbounded instead of hiding the product
// behind a parse failure.
func ParseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
