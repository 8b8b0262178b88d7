package pricing

import (
	"sort"
	"time"
)

// specificity ranks offer scopes: a product-specific promotion always beats
// a category-wide one, which always beats a store-wide one, even when the
// broader offer has a larger raw discount.
func specificity(s Scope) int {
	switch s {
	case ScopeProduct:
		return 3
	case ScopeCategory:
		return 2
	case ScopeAll:
		return 1
	default:
		return 0
	}
}

// BestOffer picks the single offer used to price the product: the live,
// applicable offer with the highest specificity, then the highest discount
// value. The sort is stable, so true ties resolve to snapshot order and
// repeated calls agree. Returns nil when nothing applies.
func BestOffer(p Product, offers []Offer, now time.Time) *Offer {
	var cands []Offer
	for _, o := range offers {
		if IsLive(o, now) && IsApplicable(o, p) {
			cands = append(cands, o)
		}
	}
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		ri, rj := specificity(cands[i].Scope), specificity(cands[j].Scope)
		if ri != rj {
			return ri > rj
		}
		return cands[i].DiscountValue.GreaterThan(cands[j].DiscountValue)
	})
	best := cands[0]
	return &best
}

// DealOffer is the selection policy for the time-limited deal listings,
// which highlight store-wide and category promotions separately from
// one-off product promotions. It is NOT a variant of BestOffer:
//
//   - a product carrying a live product-scoped offer is excluded outright;
//   - among the remaining candidates, ScopeAll outranks ScopeCategory
//     (the inverse of specificity), then discount value decides.
//
// Returns nil when the product is excluded or nothing applies.
func DealOffer(p Product, offers []Offer, now time.Time) *Offer {
	for _, o := range offers {
		if o.Scope == ScopeProduct && o.ProductID == p.ID && IsLive(o, now) {
			return nil
		}
	}
	var cands []Offer
	for _, o := range offers {
		if o.Scope == ScopeProduct {
			continue
		}
		if IsLive(o, now) && IsApplicable(o, p) {
			cands = append(cands, o)
		}
	}
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		si, sj := cands[i].Scope, cands[j].Scope
		if si != sj {
			return si == ScopeAll
		}
		return cands[i].DiscountValue.GreaterThan(cands[j].DiscountValue)
	})
	best := cands[0]
	return &best
}
