package models

import "time"

type UserDetails struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Order is the immutable snapshot written to the archive on checkout: the
// grouped view at submission time plus the submitter's contact details.
// Once indexed it is never merged with later list edits; a resubmission
// with the same ID overwrites the document wholesale.
type Order struct {
	ID           string          `json:"id,omitempty"`
	UserID       string          `json:"userId,omitempty"`
	ShoppingList []CategoryGroup `json:"shoppingList" validate:"required,min=1"`
	UserDetails  UserDetails     `json:"userDetails" validate:"required"`
	OrderDate    time.Time       `json:"orderDate" validate:"required"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
