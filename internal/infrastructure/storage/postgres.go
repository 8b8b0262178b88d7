package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Postgres provides PostgreSQL database access, for deployments where the
// catalog lives in a shared relational database instead of a local SQLite
// file. It implements the same Repository interface as Storage.
type Postgres struct {
	db *sql.DB
}

// Compile-time check that Postgres implements Repository
var _ Repository = (*Postgres)(nil)

// NewPostgres opens a PostgreSQL connection and ensures the schema exists.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

// Close closes the database connection
func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name_ar TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name_ar TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			description_ar TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			quantity INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL DEFAULT '',
			category_id TEXT NOT NULL DEFAULT '',
			img TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE TABLE IF NOT EXISTS offers (
			id TEXT PRIMARY KEY,
			title_ar TEXT NOT NULL DEFAULT '',
			title_en TEXT NOT NULL DEFAULT '',
			description_ar TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			discount_type TEXT NOT NULL DEFAULT '',
			discount_value NUMERIC(12,2) NOT NULL DEFAULT 0,
			start_date TEXT,
			end_date TEXT,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			applies_to TEXT NOT NULL DEFAULT '',
			category_id TEXT,
			product_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			start_date TEXT,
			end_date TEXT,
			discount_type TEXT NOT NULL DEFAULT '',
			discount_value NUMERIC(12,2) NOT NULL DEFAULT 0,
			usage_limit INTEGER,
			min_order_value NUMERIC(12,2)
		)`,
		`CREATE TABLE IF NOT EXISTS coupon_usages (
			id BIGSERIAL PRIMARY KEY,
			coupon_id TEXT NOT NULL REFERENCES coupons(id),
			used_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_coupon_usages_coupon ON coupon_usages(coupon_id)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL,
			address1 TEXT NOT NULL,
			address2 TEXT NOT NULL DEFAULT '',
			governorate_key TEXT NOT NULL,
			shipping_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
			coupon_id TEXT NOT NULL DEFAULT '',
			coupon_discount NUMERIC(12,2) NOT NULL DEFAULT 0,
			total NUMERIC(12,2) NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT '',
			locale TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id),
			product_id TEXT NOT NULL,
			name_ar TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			qty INTEGER NOT NULL DEFAULT 1,
			img TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, query := range queries {
		if _, err := p.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const pgProductColumns = `id, name_ar, name_en, description_ar, description_en,
	price, quantity, type, category_id, img, is_active, created_at`

func scanPGProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID,
		&p.NameAR,
		&p.NameEN,
		&p.DescriptionAR,
		&p.DescriptionEN,
		&p.Price,
		&p.Quantity,
		&p.Type,
		&p.CategoryID,
		&p.Image,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns all products, newest first
func (p *Postgres) ListProducts(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + pgProductColumns + ` FROM products ORDER BY created_at DESC, id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		prod, err := scanPGProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *prod)
	}
	return products, rows.Err()
}

// GetProduct retrieves a product by ID
func (p *Postgres) GetProduct(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + pgProductColumns + ` FROM products WHERE id = $1`

	prod, err := scanPGProduct(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return prod, nil
}

// SearchProducts matches products by name or description
func (p *Postgres) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	q := `SELECT ` + pgProductColumns + ` FROM products
		WHERE name_ar ILIKE $1 OR name_en ILIKE $1 OR description_ar ILIKE $1 OR description_en ILIKE $1
		ORDER BY created_at DESC, id
		LIMIT $2`

	rows, err := p.db.QueryContext(ctx, q, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		prod, err := scanPGProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *prod)
	}
	return products, rows.Err()
}

// ListCategories returns all categories
func (p *Postgres) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name_ar, name_en, created_at FROM categories ORDER BY name_en, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.NameAR, &c.NameEN, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListOffers returns the full offer snapshot, live or not
func (p *Postgres) ListOffers(ctx context.Context) ([]Offer, error) {
	query := `SELECT id, title_ar, title_en, description_ar, description_en,
		discount_type, discount_value, start_date, end_date, is_active,
		applies_to, category_id, product_id
		FROM offers ORDER BY id`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var o Offer
		var startDate, endDate, categoryID, productID sql.NullString
		err := rows.Scan(
			&o.ID,
			&o.TitleAR,
			&o.TitleEN,
			&o.DescriptionAR,
			&o.DescriptionEN,
			&o.DiscountType,
			&o.DiscountValue,
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
		o.StartDate = startDate.String
		o.EndDate = endDate.String
		o.CategoryID = categoryID.String
		o.ProductID = productID.String
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// GetCouponByCode retrieves a coupon by its code
func (p *Postgres) GetCouponByCode(ctx context.Context, code string) (*Coupon, error) {
	query := `SELECT id, code, is_active, start_date, end_date,
		discount_type, discount_value, usage_limit, min_order_value
		FROM coupons WHERE code = $1`

	c := &Coupon{}
	var startDate, endDate, minOrder sql.NullString
	var usageLimit sql.NullInt64
	err := p.db.QueryRowContext(ctx, query, code).Scan(
		&c.ID,
		&c.Code,
		&c.IsActive,
		&startDate,
		&endDate,
		&c.DiscountType,
		&c.DiscountValue,
		&usageLimit,
		&minOrder,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}

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
func (p *Postgres) CountCouponUsage(ctx context.Context, couponID string) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1`, couponID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count coupon usage: %w", err)
	}
	return count, nil
}

// RecordCouponUsage records one redemption of a coupon
func (p *Postgres) RecordCouponUsage(ctx context.Context, couponID string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO coupon_usages (coupon_id) VALUES ($1)`, couponID)
	if err != nil {
		return fmt.Errorf("record coupon usage: %w", err)
	}
	return nil
}

// SaveOrder persists an order and its items in one transaction
func (p *Postgres) SaveOrder(ctx context.Context, order *Order) error {
	tx, err := p.db.BeginTx(ctx, nil)
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.Address1,
		order.Address2,
		order.GovernorateKey,
		order.ShippingFee,
		order.Subtotal,
		order.CouponID,
		order.CouponDiscount,
		order.Total,
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
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID,
			item.ProductID,
			item.NameAR,
			item.NameEN,
			item.Price,
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
func (p *Postgres) GetOrder(ctx context.Context, id string) (*Order, error) {
	order := &Order{}
	err := p.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, address1, address2,
		       governorate_key, shipping_fee, subtotal, coupon_id, coupon_discount,
		       total, currency, locale, status, notes, created_at
		FROM orders WHERE id = $1`, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.Address1,
		&order.Address2,
		&order.GovernorateKey,
		&order.ShippingFee,
		&order.Subtotal,
		&order.CouponID,
		&order.CouponDiscount,
		&order.Total,
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

	rows, err := p.db.QueryContext(ctx, `
		SELECT order_id, product_id, name_ar, name_en, price, qty, img
		FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		err := rows.Scan(&item.OrderID, &item.ProductID, &item.NameAR, &item.NameEN, &item.Price, &item.Qty, &item.Image)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}
