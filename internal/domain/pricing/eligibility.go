package pricing

import "time"

// IsLive reports whether the offer is live at the given instant: the kill
// switch is on and now falls inside the [StartDate, EndDate] window. Both
// bounds are inclusive; a nil bound is open.
func IsLive(o Offer, now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.StartDate != nil && now.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && now.After(*o.EndDate) {
		return false
	}
	return true
}

// IsApplicable reports whether the offer's scope covers the product.
// Unrecognized scopes match nothing.
func IsApplicable(o Offer, p Product) bool {
	switch o.Scope {
	case ScopeProduct:
		return o.ProductID == p.ID
	case ScopeCategory:
		return o.CategoryID == p.CategoryID
	case ScopeAll:
		return true
	default:
		return false
	}
}
