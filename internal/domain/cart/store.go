package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store owns the cart and wishlist state. It is an explicit container the
// application root constructs and hands to whoever needs it; nothing else
// mutates line state. Every mutation replaces the whole slice in one step,
// so observers always see a complete before or a complete after, never a
// partial update.
type Store struct {
	mu       sync.Mutex
	lines    []Line
	wishlist []Snapshot
	subs     []func()
}

// NewStore creates an empty cart/wishlist store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a callback invoked after every mutation. Callbacks
// run outside the store lock, so they may read the store freely.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Lines returns a copy of the current cart lines.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Wishlist returns a copy of the current wishlist.
func (s *Store) Wishlist() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Snapshot, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// Add puts the snapshot in the cart with the requested quantity. If a line
// for the product already exists its quantity is incremented and the
// existing snapshot is kept: the first add's pricing wins.
func (s *Store) Add(snap Snapshot, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	updated := make([]Line, len(s.lines))
	copy(updated, s.lines)
	merged := false
	for i := range updated {
		if updated[i].ProductID == snap.ProductID {
			updated[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		updated = append(updated, Line{Snapshot: snap, Qty: qty})
	}
	s.lines = updated
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the line for the product, if present.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	updated := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		if l.ProductID != productID {
			updated = append(updated, l)
		}
	}
	s.lines = updated
	s.mu.Unlock()
	s.notify()
}

// IncreaseQty bumps the line's quantity by one, capped at the snapshotted
// stock ceiling.
func (s *Store) IncreaseQty(productID string) {
	s.adjust(productID, func(l Line) int { return l.Qty + 1 })
}

// DecreaseQty lowers the line's quantity by one, never below one. Dropping
// to zero is Remove's job.
func (s *Store) DecreaseQty(productID string) {
	s.adjust(productID, func(l Line) int { return l.Qty - 1 })
}

// SetQty sets the line's quantity directly, clamped into [1, stock ceiling].
func (s *Store) SetQty(productID string, qty int) {
	s.adjust(productID, func(Line) int { return qty })
}

func (s *Store) adjust(productID string, next func(Line) int) {
	s.mu.Lock()
	updated := make([]Line, len(s.lines))
	copy(updated, s.lines)
	for i := range updated {
		if updated[i].ProductID != productID {
			continue
		}
		updated[i].Qty = clamp(next(updated[i]), updated[i].StockCeiling)
		break
	}
	s.lines = updated
	s.mu.Unlock()
	s.notify()
}

// clamp bounds qty into [1, ceiling]. The ceiling is the stock snapshotted
// at add-time, not current stock; a ceiling below one means the stock was
// unknown and only the lower bound applies.
func clamp(qty, ceiling int) int {
	if qty < 1 {
		return 1
	}
	if ceiling >= 1 && qty > ceiling {
		return ceiling
	}
	return qty
}

// Clear removes every cart line, e.g. after a successful checkout. The
// wishlist is untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
	s.notify()
}

// ToggleWishlist adds the snapshot to the wishlist, or removes it when the
// product is already there.
func (s *Store) ToggleWishlist(snap Snapshot) {
	s.mu.Lock()
	exists := false
	for _, w := range s.wishlist {
		if w.ProductID == snap.ProductID {
			exists = true
			break
		}
	}
	updated := make([]Snapshot, 0, len(s.wishlist)+1)
	if exists {
		for _, w := range s.wishlist {
			if w.ProductID != snap.ProductID {
				updated = append(updated, w)
			}
		}
	} else {
		updated = append(updated, s.wishlist...)
		updated = append(updated, snap)
	}
	s.wishlist = updated
	s.mu.Unlock()
	s.notify()
}

// Subtotal sums price x quantity over all cart lines, using the snapshotted
// (already discounted) prices.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, l := range s.lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return sum
}
