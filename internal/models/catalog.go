package models

type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Product struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	CategoryID int    `json:"categoryId" db:"category_id"`
}

// ProductView is a catalog product overlaid with the quantity the user's
// active list currently holds for it. Quantity is 0 when the product is
// not on the list.
type ProductView struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CategoryID   int    `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Quantity     int    `json:"quantity"`
}
