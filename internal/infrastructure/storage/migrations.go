package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "catalog_schema",
		Up:      migration001CatalogSchema,
	},
	{
		Version: 2,
		Name:    "add_coupon_tables",
		Up:      migration002AddCouponTables,
	},
	{
		Version: 3,
		Name:    "add_order_tables",
		Up:      migration003AddOrderTables,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue // Already applied
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// ensureMigrationsTable creates the schema_migrations table
func (s *Storage) ensureMigrationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	_, err := s.db.Exec(query)
	return err
}

// getAppliedMigrations returns a set of applied migration versions
func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func migration001CatalogSchema(tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name_ar TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name_ar TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			description_ar TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			quantity INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL DEFAULT '',
			category_id TEXT NOT NULL DEFAULT '',
			img TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE TABLE IF NOT EXISTS offers (
			id TEXT PRIMARY KEY,
			title_ar TEXT NOT NULL DEFAULT '',
			title_en TEXT NOT NULL DEFAULT '',
			description_ar TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			discount_type TEXT NOT NULL DEFAULT '',
			discount_value TEXT NOT NULL DEFAULT '0',
			start_date TEXT,
			end_date TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 0,
			applies_to TEXT NOT NULL DEFAULT '',
			category_id TEXT,
			product_id TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func migration002AddCouponTables(tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS coupons (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT 0,
			start_date TEXT,
			end_date TEXT,
			discount_type TEXT NOT NULL DEFAULT '',
			discount_value TEXT NOT NULL DEFAULT '0',
			usage_limit INTEGER,
			min_order_value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS coupon_usages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			coupon_id TEXT NOT NULL,
			used_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (coupon_id) REFERENCES coupons(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_coupon_usages_coupon ON coupon_usages(coupon_id)`,
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func migration003AddOrderTables(tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL,
			address1 TEXT NOT NULL,
			address2 TEXT NOT NULL DEFAULT '',
			governorate_key TEXT NOT NULL,
			shipping_fee TEXT NOT NULL DEFAULT '0',
			subtotal TEXT NOT NULL DEFAULT '0',
			coupon_id TEXT NOT NULL DEFAULT '',
			coupon_discount TEXT NOT NULL DEFAULT '0',
			total TEXT NOT NULL DEFAULT '0',
			currency TEXT NOT NULL DEFAULT '',
			locale TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			name_ar TEXT NOT NULL DEFAULT '',
			name_en TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			qty INTEGER NOT NULL DEFAULT 1,
			img TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (order_id) REFERENCES orders(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
