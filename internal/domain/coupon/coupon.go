// Package coupon implements checkout coupon validation and the coupon
// discount applied to the cart subtotal.
//
// Coupons are a separate flow from promotional offers: offers discount
// individual product prices before anything reaches the cart, a coupon
// discounts the whole subtotal at checkout. Only the composition math is
// shared in shape (percentage or fixed amount, floored at zero).
package coupon

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nilecart/storefront-backend/internal/domain/pricing"
)

// Validation failures, surfaced to the shopper as distinct messages.
var (
	ErrInactive          = errors.New("coupon is not active")
	ErrNotStarted        = errors.New("coupon is not yet valid")
	ErrExpired           = errors.New("coupon has expired")
	ErrUsageLimitReached = errors.New("coupon usage limit reached")
	ErrBelowMinimum      = errors.New("order is below the coupon minimum")
)

// Coupon is a checkout discount code.
type Coupon struct {
	ID            string
	Code          string
	IsActive      bool
	StartDate     *time.Time
	EndDate       *time.Time
	DiscountType  pricing.DiscountType
	DiscountValue decimal.Decimal
	UsageLimit    *int             // nil = unlimited
	MinOrderValue *decimal.Decimal // nil = no minimum
}

// Validate checks whether the coupon may be applied to an order with the
// given subtotal. usageCount is how many times the coupon has already been
// redeemed. Unlike offer eligibility, coupon checks report why they fail:
// the shopper typed a code and deserves an answer.
func Validate(c Coupon, now time.Time, usageCount int, subtotal decimal.Decimal) error {
	if !c.IsActive {
		return ErrInactive
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return ErrNotStarted
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return ErrExpired
	}
	if c.UsageLimit != nil && usageCount >= *c.UsageLimit {
		return ErrUsageLimitReached
	}
	if c.MinOrderValue != nil && subtotal.LessThan(*c.MinOrderValue) {
		return ErrBelowMinimum
	}
	return nil
}

// Apply returns the subtotal after the coupon discount and the discount
// amount itself. A nil coupon, an order below the coupon minimum, or an
// unrecognized discount type leaves the subtotal unchanged. For fixed
// coupons larger than the subtotal, the reported discount is capped at the
// subtotal so totals still reconcile.
func Apply(subtotal decimal.Decimal, c *Coupon) (final, discount decimal.Decimal) {
	if c == nil {
		return subtotal, decimal.Zero
	}
	if c.MinOrderValue != nil && subtotal.LessThan(*c.MinOrderValue) {
		return subtotal, decimal.Zero
	}

	switch c.DiscountType {
	case pricing.DiscountPercentage:
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		final = subtotal.Sub(discount)
		if final.IsNegative() {
			final = decimal.Zero
		}
		return final, discount
	case pricing.DiscountFixed:
		final = subtotal.Sub(c.DiscountValue)
		if final.IsNegative() {
			final = decimal.Zero
		}
		discount = c.DiscountValue
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
		return final, discount
	default:
		return subtotal, decimal.Zero
	}
}
