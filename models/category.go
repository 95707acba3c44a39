package models

import "time"

// Category represents a product category
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryInput is the request body for creating or updating a category
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description"`
}
