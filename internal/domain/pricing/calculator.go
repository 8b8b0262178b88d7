package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Apply computes the discounted price for a base price under the given
// offer and the integer discount percentage shown to the user.
//
// A nil offer or an unrecognized discount type leaves the price unchanged.
// The final price is floored at zero and rounded to two decimal places.
// For fixed discounts larger than the base price the displayed percentage
// exceeds 100; that is deliberate and matches what the rest of the system
// renders (see the calculator tests).
func Apply(base decimal.Decimal, o *Offer) (final decimal.Decimal, percent int) {
	if o == nil {
		return base.Round(2), 0
	}
	v := o.DiscountValue

	switch o.DiscountType {
	case DiscountPercentage:
		final = base.Mul(decimal.NewFromInt(1).Sub(v.Div(hundred)))
		if final.IsNegative() {
			final = decimal.Zero
		}
		return final.Round(2), int(v.Round(0).IntPart())
	case DiscountFixed:
		final = base.Sub(v)
		if final.IsNegative() {
			final = decimal.Zero
		}
		percent = 0
		if base.IsPositive() {
			percent = int(v.Div(base).Mul(hundred).Round(0).IntPart())
		}
		return final.Round(2), percent
	default:
		return base.Round(2), 0
	}
}
