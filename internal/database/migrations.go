package database

import (
	"context"
	"fmt"
)

// Migrate creates the schema when it is missing and seeds the reference
// catalog. Categories and products are fixed sample data and never change
// after seeding.
func Migrate(ctx context.Context, db *DB) error {
	var exists bool
	err := db.QueryRow(ctx,
		"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'categories')").Scan(&exists)

	if err != nil {
		return fmt.Errorf("failed to check if tables exist: %w", err)
	}

	if !exists {
		_, err = db.Exec(ctx, `
			CREATE TABLE categories (
				id INTEGER PRIMARY KEY,
				name VARCHAR(255) NOT NULL
			);

			CREATE TABLE products (
				id INTEGER PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				category_id INTEGER NOT NULL REFERENCES categories(id)
			);

			CREATE TABLE shopping_lists (
				id SERIAL PRIMARY KEY,
				user_id VARCHAR(255) NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP
			);

			CREATE TABLE shopping_list_items (
				id SERIAL PRIMARY KEY,
				shopping_list_id INTEGER NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
				product_id INTEGER NOT NULL REFERENCES products(id),
				quantity INTEGER NOT NULL CHECK (quantity >= 1),
				UNIQUE(shopping_list_id, product_id)
			);

			CREATE INDEX idx_shopping_lists_user_created ON shopping_lists(user_id, created_at DESC);
			CREATE INDEX idx_shopping_list_items_list_id ON shopping_list_items(shopping_list_id);
		`)

		if err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return seedCatalog(ctx, db)
}

func seedCatalog(ctx context.Context, db *DB) error {
	_, err := db.Exec(ctx, `
		INSERT INTO categories (id, name) VALUES
			(1, 'חלב וגבינות'),
			(2, 'טואלטיקה'),
			(3, 'בשר'),
			(4, 'ירקות ופירות')
		ON CONFLICT (id) DO NOTHING;

		INSERT INTO products (id, name, category_id) VALUES
			(1, 'קוטג''', 1),
			(2, 'חלב 3%', 1),
			(3, 'שמנת חמוצה', 1),
			(4, 'סבון', 2),
			(5, 'שמפו', 2),
			(6, 'נקניקיות', 3),
			(7, 'שוקיים', 3),
			(8, 'סלמון', 3),
			(9, 'תפוח', 4),
			(10, 'בננה', 4),
			(11, 'עגבניה', 4),
			(12, 'מלפפון', 4)
		ON CONFLICT (id) DO NOTHING;
	`)

	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return nil
}
