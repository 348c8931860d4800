// Package store provides the Postgres-backed implementation of the
// aggregation engine's Store contract plus the catalog queries.
package store

import (
	"context"
	"errors"
	"fmt"

	"grocery-list/internal/database"
	"grocery-list/internal/list"
	"grocery-list/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both the pool and a transaction, so every query
// method works unchanged inside InTx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Postgres struct {
	db   *database.DB
	conn querier
}

func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db, conn: db}
}

// InTx runs fn against a store bound to one transaction; an error from fn
// rolls the whole batch back.
func (p *Postgres) InTx(ctx context.Context, fn func(list.Store) error) error {
	return pgx.BeginFunc(ctx, p.db.Pool, func(tx pgx.Tx) error {
		return fn(&Postgres{db: p.db, conn: tx})
	})
}

func (p *Postgres) LatestList(ctx context.Context, userID string) (*models.ShoppingList, error) {
	var l models.ShoppingList
	err := p.conn.QueryRow(ctx,
		`SELECT id, user_id, created_at, updated_at
		 FROM shopping_lists
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		userID).Scan(&l.ID, &l.UserID, &l.CreatedAt, &l.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest list: %w", err)
	}

	return &l, nil
}

func (p *Postgres) CreateList(ctx context.Context, userID string) (*models.ShoppingList, error) {
	var l models.ShoppingList
	err := p.conn.QueryRow(ctx,
		`INSERT INTO shopping_lists (user_id)
		 VALUES ($1)
		 RETURNING id, user_id, created_at, updated_at`,
		userID).Scan(&l.ID, &l.UserID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return &l, nil
}

func (p *Postgres) ListEntries(ctx context.Context, listID int) ([]models.ListEntry, error) {
	rows, err := p.conn.Query(ctx,
		`SELECT sli.product_id, p.name, c.id, c.name, sli.quantity
		 FROM shopping_list_items sli
		 JOIN products p ON sli.product_id = p.id
		 JOIN categories c ON p.category_id = c.id
		 WHERE sli.shopping_list_id = $1
		 ORDER BY c.id, sli.id`,
		listID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch list items: %w", err)
	}
	defer rows.Close()

	var entries []models.ListEntry
	for rows.Next() {
		var e models.ListEntry
		if err := rows.Scan(&e.ProductID, &e.ProductName, &e.CategoryID, &e.CategoryName, &e.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (p *Postgres) MissingProducts(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := p.conn.Query(ctx,
		"SELECT id FROM products WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check products: %w", err)
	}
	defer rows.Close()

	known := make(map[int]bool, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		known[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if !known[id] && !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}

	return missing, nil
}

func (p *Postgres) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := p.conn.Query(ctx,
		"SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (p *Postgres) CategoryProducts(ctx context.Context, categoryID int) ([]models.ProductView, error) {
	rows, err := p.conn.Query(ctx,
		`SELECT p.id, p.name, p.category_id, c.name
		 FROM products p
		 JOIN categories c ON p.category_id = c.id
		 WHERE p.category_id = $1
		 ORDER BY p.id`,
		categoryID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductView{}
	for rows.Next() {
		var pv models.ProductView
		if err := rows.Scan(&pv.ID, &pv.Name, &pv.CategoryID, &pv.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, pv)
	}

	return products, rows.Err()
}

func (p *Postgres) UpsertItem(ctx context.Context, listID, productID, quantity int) error {
	_, err := p.conn.Exec(ctx,
		`INSERT INTO shopping_list_items (shopping_list_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (shopping_list_id, product_id)
		 DO UPDATE SET quantity = EXCLUDED.quantity`,
		listID, productID, quantity)

	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}

	return nil
}

func (p *Postgres) DeleteItem(ctx context.Context, listID, productID int) error {
	_, err := p.conn.Exec(ctx,
		"DELETE FROM shopping_list_items WHERE shopping_list_id = $1 AND product_id = $2",
		listID, productID)

	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

func (p *Postgres) TouchList(ctx context.Context, listID int) error {
	_, err := p.conn.Exec(ctx,
		"UPDATE shopping_lists SET updated_at = CURRENT_TIMESTAMP WHERE id = $1",
		listID)

	if err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}

	return nil
}
