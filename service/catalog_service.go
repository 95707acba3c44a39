package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mugix-storefront/models"
	"mugix-storefront/repository"
)

// ErrNegativePrice is returned when a product input carries a price below 0
var ErrNegativePrice = errors.New("price must not be negative")

// CatalogServiceInterface is the catalog data access used by the handlers
type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error)
	SetProductImages(ctx context.Context, id string, images []string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CatalogService maps admin inputs onto stored products and categories
type CatalogService struct {
	products   repository.ProductRepositoryInterface
	categories repository.CategoryRepositoryInterface
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	products repository.ProductRepositoryInterface,
	categories repository.CategoryRepositoryInterface,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

var _ CatalogServiceInterface = (*CatalogService)(nil)

func (s *CatalogService) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	return s.products.List(ctx, filters)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// CreateProduct stores a new product. Products are available unless the
// input says otherwise.
func (s *CatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if in.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	p := &models.Product{Available: true}
	applyInput(p, in)
	return s.products.Create(ctx, p)
}

// UpdateProduct applies the input over the stored product. Images, colors
// and availability are kept when the input leaves them out.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	if in.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(p, in)

	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product updated", zap.String("id", id))
	return updated, nil
}

func (s *CatalogService) SetProductImages(ctx context.Context, id string, images []string) (*models.Product, error) {
	return s.products.UpdateImages(ctx, id, images)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	return s.categories.Create(ctx, in)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	return s.categories.Update(ctx, id, in)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

func applyInput(p *models.Product, in models.ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.CategoryID = in.CategoryID
	if p.CategoryID != nil && *p.CategoryID == "" {
		p.CategoryID = nil
	}

	if images, ok := in.ResolveImages(); ok {
		p.Images = images
		p.ImageURL = nil
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
	p.Normalize()
}
