package storage

import "context"

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL)
// and makes testing with mocks straightforward.
type Repository interface {
	CatalogRepository
	CouponRepository
	OrderRepository
	Close() error
}

// CatalogRepository supplies the read-only product/category/offer
// snapshots the storefront prices against. Offers are always fetched as a
// whole snapshot; the pricing core filters them per product.
type CatalogRepository interface {
	// ListProducts returns all products, newest first
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id string) (*Product, error)

	// SearchProducts matches products by name or description
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)

	// ListCategories returns all categories
	ListCategories(ctx context.Context) ([]Category, error)

	// ListOffers returns the full offer snapshot, live or not
	ListOffers(ctx context.Context) ([]Offer, error)
}

// CouponRepository handles coupon lookup and redemption tracking
type CouponRepository interface {
	// GetCouponByCode retrieves a coupon by its code
	GetCouponByCode(ctx context.Context, code string) (*Coupon, error)

	// CountCouponUsage returns how many times a coupon has been redeemed
	CountCouponUsage(ctx context.Context, couponID string) (int, error)

	// RecordCouponUsage records one redemption of a coupon
	RecordCouponUsage(ctx context.Context, couponID string) error
}

// OrderRepository persists submitted checkout orders
type OrderRepository interface {
	// SaveOrder persists an order and its items
	SaveOrder(ctx context.Context, order *Order) error

	// GetOrder retrieves an order with its items
	GetOrder(ctx context.Context, id string) (*Order, error)
}
