package storage

import (
	"context"
	"strings"
	"sync"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	mu         sync.Mutex
	products   []Product
	categories []Category
	offers     []Offer
	coupons    map[string]*Coupon // keyed by code
	usages     map[string]int     // coupon_id -> redemption count
	orders     map[string]*Order

	// Hooks for test assertions
	SaveOrderCalled bool
	LastSavedOrder  *Order
	UsageRecorded   []string

	// Error injection for testing error paths
	ListProductsErr      error
	GetProductErr        error
	ListOffersErr        error
	GetCouponErr         error
	CountCouponUsageErr  error
	RecordCouponUsageErr error
	SaveOrderErr         error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		coupons: make(map[string]*Coupon),
		usages:  make(map[string]int),
		orders:  make(map[string]*Order),
	}
}

// AddProduct registers a product in the mock catalog
func (m *MockRepository) AddProduct(p Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, p)
}

// AddCategory registers a category in the mock catalog
func (m *MockRepository) AddCategory(c Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append(m.categories, c)
}

// AddOffer registers an offer in the mock catalog
func (m *MockRepository) AddOffer(o Offer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers = append(m.offers, o)
}

// AddCoupon registers a coupon, optionally with prior redemptions
func (m *MockRepository) AddCoupon(c Coupon, used int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := c
	m.coupons[c.Code] = &stored
	m.usages[c.ID] = used
}

func (m *MockRepository) ListProducts(ctx context.Context) ([]Product, error) {
	if m.ListProductsErr != nil {
		return nil, m.ListProductsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MockRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	if m.GetProductErr != nil {
		return nil, m.GetProductErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *MockRepository) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	var out []Product
	for _, p := range m.products {
		if len(out) >= limit {
			break
		}
		if containsFold(p.NameAR, query) || containsFold(p.NameEN, query) ||
			containsFold(p.DescriptionAR, query) || containsFold(p.DescriptionEN, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *MockRepository) ListOffers(ctx context.Context) ([]Offer, error) {
	if m.ListOffersErr != nil {
		return nil, m.ListOffersErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Offer, len(m.offers))
	copy(out, m.offers)
	return out, nil
}

func (m *MockRepository) GetCouponByCode(ctx context.Context, code string) (*Coupon, error) {
	if m.GetCouponErr != nil {
		return nil, m.GetCouponErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.coupons[code]; ok {
		coupon := *c
		return &coupon, nil
	}
	return nil, ErrCouponNotFound
}

func (m *MockRepository) CountCouponUsage(ctx context.Context, couponID string) (int, error) {
	if m.CountCouponUsageErr != nil {
		return 0, m.CountCouponUsageErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usages[couponID], nil
}

func (m *MockRepository) RecordCouponUsage(ctx context.Context, couponID string) error {
	if m.RecordCouponUsageErr != nil {
		return m.RecordCouponUsageErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usages[couponID]++
	m.UsageRecorded = append(m.UsageRecorded, couponID)
	return nil
}

func (m *MockRepository) SaveOrder(ctx context.Context, order *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveOrderCalled = true
	m.LastSavedOrder = order
	if m.SaveOrderErr != nil {
		return m.SaveOrderErr
	}
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *MockRepository) GetOrder(ctx context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; ok {
		order := *o
		return &order, nil
	}
	return nil, ErrOrderNotFound
}

func (m *MockRepository) Close() error { return nil }

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
