package repository

import (
	"context"
	"errors"

	"mugix-storefront/models"
)

var (
	// ErrNotFound is returned when no row matches the given id
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a product points to a missing category
	ErrInvalidReference = errors.New("referenced category does not exist")
)

// ProductRepositoryInterface defines the contract for product persistence
type ProductRepositoryInterface interface {
	List(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateImages(ctx context.Context, id string, images []string) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepositoryInterface defines the contract for category persistence
type CategoryRepositoryInterface interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// ContactRepositoryInterface defines the contract for contact messages
type ContactRepositoryInterface interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
}
