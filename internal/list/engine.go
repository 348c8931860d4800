// Package list implements the shopping-list aggregation engine: it merges
// batches of per-product quantity edits into the user's active list and
// renders the category-grouped view that clients consume.
package list

import (
	"context"
	"fmt"

	"grocery-list/internal/models"
)

// UnknownProductError rejects a batch that references product ids missing
// from the catalog. The whole batch fails and nothing is persisted.
type UnknownProductError struct {
	IDs []int
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product ids: %v", e.IDs)
}

// Store is the persistence contract the engine runs against.
//
// LatestList returns the user's most recently created list, or nil when the
// user has none. InTx runs fn against a store bound to a single transaction;
// a failure rolls back every mutation fn made.
type Store interface {
	LatestList(ctx context.Context, userID string) (*models.ShoppingList, error)
	CreateList(ctx context.Context, userID string) (*models.ShoppingList, error)
	ListEntries(ctx context.Context, listID int) ([]models.ListEntry, error)
	MissingProducts(ctx context.Context, ids []int) ([]int, error)
	CategoryProducts(ctx context.Context, categoryID int) ([]models.ProductView, error)
	UpsertItem(ctx context.Context, listID, productID, quantity int) error
	DeleteItem(ctx context.Context, listID, productID int) error
	TouchList(ctx context.Context, listID int) error
	InTx(ctx context.Context, fn func(Store) error) error
}

type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// CurrentList renders the grouped view of the user's active list. A user
// with no list gets an empty view, not an error. Read-only.
func (e *Engine) CurrentList(ctx context.Context, userID string) (*models.ShoppingListView, error) {
	list, err := e.store.LatestList(ctx, userID)
	if err != nil {
		return nil, err
	}

	if list == nil {
		return &models.ShoppingListView{Items: []models.CategoryGroup{}}, nil
	}

	entries, err := e.store.ListEntries(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	return &models.ShoppingListView{ID: list.ID, Items: groupByCategory(entries)}, nil
}

// ApplyUpdates merges a batch of (product, quantity) edits into the user's
// active list, creating the list when none exists. Quantity > 0 overwrites
// the stored quantity for that product (never increments); quantity == 0
// removes the item, and removing an absent item is a no-op. Pairs are
// applied in input order, so a repeated product id resolves to its last
// occurrence. The list's updated_at is bumped once per batch, after all
// item mutations. Every call returns the full recomputed grouped view.
func (e *Engine) ApplyUpdates(ctx context.Context, userID string, updates []models.ProductQuantity) (*models.ShoppingListView, error) {
	ids := make([]int, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}

	missing, err := e.store.MissingProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &UnknownProductError{IDs: missing}
	}

	err = e.store.InTx(ctx, func(s Store) error {
		list, err := s.LatestList(ctx, userID)
		if err != nil {
			return err
		}
		if list == nil {
			if list, err = s.CreateList(ctx, userID); err != nil {
				return err
			}
		}

		for _, u := range updates {
			if u.Quantity > 0 {
				if err := s.UpsertItem(ctx, list.ID, u.ID, u.Quantity); err != nil {
					return err
				}
			} else if err := s.DeleteItem(ctx, list.ID, u.ID); err != nil {
				return err
			}
		}

		return s.TouchList(ctx, list.ID)
	})
	if err != nil {
		return nil, err
	}

	return e.CurrentList(ctx, userID)
}

// ProductsForCategory returns the catalog products of one category overlaid
// with the quantities from the user's active list (0 when not listed).
func (e *Engine) ProductsForCategory(ctx context.Context, userID string, categoryID int) ([]models.ProductView, error) {
	products, err := e.store.CategoryProducts(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.ProductView{}
	}

	list, err := e.store.LatestList(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return products, nil
	}

	entries, err := e.store.ListEntries(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	quantities := make(map[int]int, len(entries))
	for _, entry := range entries {
		quantities[entry.ProductID] = entry.Quantity
	}

	for i := range products {
		products[i].Quantity = quantities[products[i].ID]
	}

	return products, nil
}

func groupByCategory(entries []models.ListEntry) []models.CategoryGroup {
	groups := []models.CategoryGroup{}
	byCategory := make(map[int]int)

	for _, entry := range entries {
		i, ok := byCategory[entry.CategoryID]
		if !ok {
			i = len(groups)
			byCategory[entry.CategoryID] = i
			groups = append(groups, models.CategoryGroup{
				CategoryID:   entry.CategoryID,
				CategoryName: entry.CategoryName,
			})
		}

		groups[i].Products = append(groups[i].Products, models.GroupedProduct{
			ID:       entry.ProductID,
			Name:     entry.ProductName,
			Quantity: entry.Quantity,
		})
	}

	return groups
}
