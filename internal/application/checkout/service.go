// Package checkout implements order submission: server-side re-pricing of
// the cart, coupon application, shipping fees, persistence, and a
// best-effort order notification.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nilecart/storefront-backend/internal/domain/coupon"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/domain/shipping"
	"github.com/nilecart/storefront-backend/internal/infrastructure/config"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// Request validation failures.
var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidCustomer = errors.New("customer name or phone is invalid")
	ErrInvalidAddress  = errors.New("address is incomplete")
	ErrCouponRejected  = errors.New("coupon rejected")
)

// Customer identifies who placed the order.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Address is the delivery address.
type Address struct {
	Governorate string
	Address1    string
	Address2    string
}

// Item is one requested cart line: product and quantity only. Prices are
// recomputed server-side from the catalog and current offers, never taken
// from the client.
type Item struct {
	ProductID string
	Qty       int
}

// Request is a checkout submission.
type Request struct {
	Customer   Customer
	Address    Address
	Items      []Item
	CouponCode string
	Notes      string
	Currency   string
	Locale     string
}

// Service orchestrates checkout.
type Service struct {
	repo     storage.Repository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	currency string
	locale   string
}

// NewService creates a checkout service. notifier may be nil.
func NewService(repo storage.Repository, notifier Notifier, logger *slog.Logger, cfg config.CheckoutConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	currency := cfg.Currency
	if currency == "" {
		currency = shipping.DefaultCurrency
	}
	locale := cfg.DefaultLocale
	if locale == "" {
		locale = "ar"
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		currency: currency,
		locale:   locale,
	}
}

// WithClock overrides the service clock, for deterministic tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit validates the request, prices every line against the catalog and
// the current offer snapshot, applies the coupon and shipping fee, and
// persists the order. The returned order carries the computed totals.
func (s *Service) Submit(ctx context.Context, req Request) (*storage.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	fee, err := shipping.Fee(req.Address.Governorate)
	if err != nil {
		return nil, err
	}

	now := s.now()

	offerRecords, err := s.repo.ListOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load offers: %w", err)
	}
	offers := storage.PricingOffers(offerRecords)

	subtotal := decimal.Zero
	items := make([]storage.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := s.repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, err)
		}
		qty := line.Qty
		if qty < 1 {
			qty = 1
		}

		quote := pricing.Resolve(product.Pricing(), offers, now)
		lineTotal := quote.FinalPrice.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)

		items = append(items, storage.OrderItem{
			ProductID: product.ID,
			NameAR:    product.NameAR,
			NameEN:    product.NameEN,
			Price:     quote.FinalPrice,
			Qty:       qty,
			Image:     product.Image,
		})
	}

	total := subtotal
	couponID := ""
	couponDiscount := decimal.Zero
	if code := strings.TrimSpace(req.CouponCode); code != "" {
		applied, discount, err := s.applyCoupon(ctx, code, subtotal, now)
		if err != nil {
			return nil, err
		}
		couponID = applied
		couponDiscount = discount
		total = subtotal.Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}
	}
	total = total.Add(fee)

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}
	locale := req.Locale
	if locale == "" {
		locale = s.locale
	}

	order := &storage.Order{
		ID:             uuid.NewString(),
		CustomerName:   req.Customer.Name,
		CustomerEmail:  req.Customer.Email,
		CustomerPhone:  req.Customer.Phone,
		Address1:       req.Address.Address1,
		Address2:       req.Address.Address2,
		GovernorateKey: req.Address.Governorate,
		ShippingFee:    fee,
		Subtotal:       subtotal,
		CouponID:       couponID,
		CouponDiscount: couponDiscount,
		Total:          total,
		Currency:       currency,
		Locale:         locale,
		Status:         storage.OrderStatusPending,
		Notes:          req.Notes,
		CreatedAt:      now.UTC(),
		Items:          items,
	}

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	// Notification is best-effort: a failed email never fails the order.
	if s.notifier != nil {
		if err := s.notifier.OrderSubmitted(ctx, order); err != nil {
			s.logger.Warn("order notification failed", "order_id", order.ID, "error", err)
		}
	}

	s.logger.Info("order submitted",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total.StringFixed(2),
		"governorate", order.GovernorateKey,
	)
	return order, nil
}

// applyCoupon validates and redeems the coupon, returning its ID and the
// discount amount.
func (s *Service) applyCoupon(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (string, decimal.Decimal, error) {
	record, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrCouponNotFound) {
			return "", decimal.Zero, fmt.Errorf("%w: %s not found", ErrCouponRejected, code)
		}
		return "", decimal.Zero, fmt.Errorf("load coupon: %w", err)
	}

	used, err := s.repo.CountCouponUsage(ctx, record.ID)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("count coupon usage: %w", err)
	}

	c := record.Domain()
	if err := coupon.Validate(c, now, used, subtotal); err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: %v", ErrCouponRejected, err)
	}

	_, discount := coupon.Apply(subtotal, &c)

	if err := s.repo.RecordCouponUsage(ctx, record.ID); err != nil {
		return "", decimal.Zero, fmt.Errorf("record coupon usage: %w", err)
	}
	return record.ID, discount, nil
}

func validate(req Request) error {
	if len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	if len(strings.TrimSpace(req.Customer.Name)) < 2 || len(strings.TrimSpace(req.Customer.Phone)) < 6 {
		return ErrInvalidCustomer
	}
	if len(strings.TrimSpace(req.Address.Address1)) < 5 {
		return ErrInvalidAddress
	}
	return nil
}
