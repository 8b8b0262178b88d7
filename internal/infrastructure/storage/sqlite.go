package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Storage provides SQLite database access for the storefront catalog,
// coupons, and orders. It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

const productColumns = `id, name_ar, name_en, description_ar, description_en,
	price, quantity, type, category_id, img, is_active, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	var price string
	var createdAt sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.NameAR,
		&p.NameEN,
		&p.DescriptionAR,
		&p.DescriptionEN,
		&price,
		&p.Quantity,
		&p.Type,
		&p.CategoryID,
		&p.Image,
		&p.IsActive,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	p.Price = parseMoney(price)
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	return p, nil
}

// parseMoney coerces a stored decimal string, treating malformed values
// as zero rather than failing the read.
func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ListProducts returns all products, newest first
func (s *Storage) ListProducts(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// GetProduct retrieves a product by ID
func (s *Storage) GetProduct(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// SearchProducts matches products by name or description
func (s *Storage) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	q := `SELECT ` + productColumns + ` FROM products
		WHERE name_ar LIKE ? OR name_en LIKE ? OR description_ar LIKE ? OR description_en LIKE ?
		ORDER BY created_at DESC, id
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// ListCategories returns all categories
func (s *Storage) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name_ar, name_en, created_at FROM categories ORDER BY name_en, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.NameAR, &c.NameEN, &createdAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if createdAt.Valid {
			c.CreatedAt = createdAt.Time
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListOffers returns the full offer snapshot, live or not
func (s *Storage) ListOffers(ctx context.Context) ([]Offer, error) {
	query := `SELECT id, title_ar, title_en, description_ar, description_en,
		discount_type, discount_value, start_date, end_date, is_active,
		applies_to, category_id, product_id
		FROM offers ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var o Offer
		var value string
		var startDate, endDate, categoryID, productID sql.NullString
		err := rows.Scan(
			&o.ID,
			&o.TitleAR,
			&o.TitleEN,
			&o.DescriptionAR,
			&o.DescriptionEN,
			&o.DiscountType,
			&value,
			&startDate,
			&endDate,
			&o.IsActive,
			&o.AppliesTo,
			&categoryID,
			&productID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		o.DiscountValue = parseMoney(value)
		o.StartDate = startDate.String
		o.EndDate = endDate.String
		o.CategoryID = categoryID.String
		o.ProductID = productID.String
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// GetCouponByCode retrieves a coupon by its code
func (s *Storage) GetCouponByCode(ctx context.Context, code string) (*Coupon, error) {
	query := `SELECT id, code, is_active, start_date, end_date,
		discount_type, discount_value, usage_limit, min_order_value
		FROM coupons WHERE code = ?`

	c := &Coupon{}
	var value string
	var startDate, endDate, minOrder sql.NullString
	var usageLimit sql.NullInt64
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&c.ID,
		&c.Code,
		&c.IsActive,
		&startDate,
		&endDate,
		&c.DiscountType,
		&value,
		&usageLimit,
		&minOrder,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}

	c.DiscountValue = parseMoney(value)
	c.StartDate = startDate.String
	c.EndDate = endDate.String
	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		c.UsageLimit = &limit
	}
	if minOrder.Valid {
		min := parseMoney(minOrder.String)
		c.MinOrderValue = &min
	}
	return c, nil
}

// CountCouponUsage returns how many times a coupon has been redeemed
func (s *Storage) CountCouponUsage(ctx context.Context, couponID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = ?`, couponID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count coupon usage: %w", err)
	}
	return count, nil
}

// RecordCouponUsage records one redemption of a coupon
func (s *Storage) RecordCouponUsage(ctx context.Context, couponID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coupon_usages (coupon_id) VALUES (?)`, couponID)
	if err != nil {
		return fmt.Errorf("record coupon usage: %w", err)
	}
	return nil
}

// SaveOrder persists an order and its items in one transaction
func (s *Storage) SaveOrder(ctx context.Context, order *Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		(id, customer_name, customer_email, customer_phone, address1, address2,
		 governorate_key, shipping_fee, subtotal, coupon_id, coupon_discount,
		 total, currency, locale, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.Address1,
		order.Address2,
		order.GovernorateKey,
		order.ShippingFee.String(),
		order.Subtotal.String(),
		order.CouponID,
		order.CouponDiscount.String(),
		order.Total.String(),
		order.Currency,
		order.Locale,
		order.Status,
		order.Notes,
		order.CreatedAt,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name_ar, name_en, price, qty, img)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID,
			item.ProductID,
			item.NameAR,
			item.NameEN,
			item.Price.String(),
			item.Qty,
			item.Image,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// GetOrder retrieves an order with its items
func (s *Storage) GetOrder(ctx context.Context, id string) (*Order, error) {
	order := &Order{}
	var shippingFee, subtotal, couponDiscount, total string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, address1, address2,
		       governorate_key, shipping_fee, subtotal, coupon_id, coupon_discount,
		       total, currency, locale, status, notes, created_at
		FROM orders WHERE id = ?`, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.Address1,
		&order.Address2,
		&order.GovernorateKey,
		&shippingFee,
		&subtotal,
		&order.CouponID,
		&couponDiscount,
		&total,
		&order.Currency,
		&order.Locale,
		&order.Status,
		&order.Notes,
		&order.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	order.ShippingFee = parseMoney(shippingFee)
	order.Subtotal = parseMoney(subtotal)
	order.CouponDiscount = parseMoney(couponDiscount)
	order.Total = parseMoney(total)

	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, product_id, name_ar, name_en, price, qty, img
		FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		var price string
		err := rows.Scan(&item.OrderID, &item.ProductID, &item.NameAR, &item.NameEN, &price, &item.Qty, &item.Image)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.Price = parseMoney(price)
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}
