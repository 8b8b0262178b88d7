package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Write helpers for the catalog tables. The storefront itself only reads
// the catalog; these exist for the management import path, seeding, and
// tests, which is why they sit on the concrete types rather than on the
// Repository interface.

// SaveCategory inserts or replaces a category
func (s *Storage) SaveCategory(ctx context.Context, c *Category) error {
	createdAt := any(c.CreatedAt)
	if c.CreatedAt.IsZero() {
		createdAt = nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO categories (id, name_ar, name_en, created_at)
		VALUES (?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		c.ID, c.NameAR, c.NameEN, createdAt,
	)
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// SaveProduct inserts or replaces a product
func (s *Storage) SaveProduct(ctx context.Context, p *Product) error {
	createdAt := any(p.CreatedAt)
	if p.CreatedAt.IsZero() {
		createdAt = nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO products
		(id, name_ar, name_en, description_ar, description_en, price, quantity,
		 type, category_id, img, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		p.ID, p.NameAR, p.NameEN, p.DescriptionAR, p.DescriptionEN,
		p.Price.String(), p.Quantity, p.Type, p.CategoryID, p.Image, p.IsActive,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// SaveOffer inserts or replaces an offer
func (s *Storage) SaveOffer(ctx context.Context, o *Offer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO offers
		(id, title_ar, title_en, description_ar, description_en, discount_type,
		 discount_value, start_date, end_date, is_active, applies_to, category_id, product_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.TitleAR, o.TitleEN, o.DescriptionAR, o.DescriptionEN,
		o.DiscountType, o.DiscountValue.String(),
		nullableString(o.StartDate), nullableString(o.EndDate),
		o.IsActive, o.AppliesTo,
		nullableString(o.CategoryID), nullableString(o.ProductID),
	)
	if err != nil {
		return fmt.Errorf("save offer: %w", err)
	}
	return nil
}

// SaveCoupon inserts or replaces a coupon
func (s *Storage) SaveCoupon(ctx context.Context, c *Coupon) error {
	var usageLimit sql.NullInt64
	if c.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*c.UsageLimit), Valid: true}
	}
	var minOrder sql.NullString
	if c.MinOrderValue != nil {
		minOrder = sql.NullString{String: c.MinOrderValue.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO coupons
		(id, code, is_active, start_date, end_date, discount_type, discount_value,
		 usage_limit, min_order_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Code, c.IsActive,
		nullableString(c.StartDate), nullableString(c.EndDate),
		c.DiscountType, c.DiscountValue.String(),
		usageLimit, minOrder,
	)
	if err != nil {
		return fmt.Errorf("save coupon: %w", err)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
