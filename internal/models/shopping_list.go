package models

import "time"

type ShoppingList struct {
	ID        int        `json:"id" db:"id"`
	UserID    string     `json:"userId" db:"user_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt" db:"updated_at"`
}

type ShoppingListItem struct {
	ID             int `json:"id" db:"id"`
	ShoppingListID int `json:"shoppingListId" db:"shopping_list_id"`
	ProductID      int `json:"productId" db:"product_id"`
	Quantity       int `json:"quantity" db:"quantity"`
}

// ListEntry is a shopping-list item joined with its product and category
// reference data, the raw material for the grouped view.
type ListEntry struct {
	ProductID    int
	ProductName  string
	CategoryID   int
	CategoryName string
	Quantity     int
}

// GroupedProduct and CategoryGroup form the grouped view: the
// category-bucketed rendering of a list returned to clients after every
// read and every mutation.
type GroupedProduct struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CategoryGroup struct {
	CategoryID   int              `json:"categoryId"`
	CategoryName string           `json:"categoryName"`
	Products     []GroupedProduct `json:"products"`
}

type ShoppingListView struct {
	ID    int             `json:"id,omitempty"`
	Items []CategoryGroup `json:"items"`
}

type ProductQuantity struct {
	ID       int `json:"id" validate:"required"`
	Quantity int `json:"quantity" validate:"min=0"`
}

type AddToShoppingListRequest struct {
	CategoryID int               `json:"categoryId" validate:"required"`
	Products   []ProductQuantity `json:"products" validate:"required,min=1,dive"`
}
