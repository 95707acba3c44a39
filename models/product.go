package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, as the storefront client expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductColor is a named color variant of a product
type ProductColor struct {
	Name string `json:"name" validate:"required,max=60"`
	Hex  string `json:"hex" validate:"omitempty,hexcolor"`
}

// CategoryRef is the category summary embedded in product responses
type CategoryRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Product represents a catalog product
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Images      []string        `json:"images"`
	CategoryID  *string         `json:"category_id"`
	Available   bool            `json:"available"`
	Colors      []ProductColor  `json:"colors,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Category    *CategoryRef    `json:"category,omitempty"`
}

// Normalize applies the legacy single-image rule and keeps image_url equal
// to the primary image.
func (p *Product) Normalize() {
	if len(p.Images) == 0 && p.ImageURL != nil && *p.ImageURL != "" {
		p.Images = []string{*p.ImageURL}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.ImageURL = p.Primary()
}

// Primary returns the image at index 0, or nil when there are no images
func (p *Product) Primary() *string {
	if len(p.Images) == 0 {
		return nil
	}
	primary := p.Images[0]
	return &primary
}

// HasColors reports whether the product offers color variants
func (p *Product) HasColors() bool {
	return len(p.Colors) > 0
}

// ColorByName looks up a variant by its display name
func (p *Product) ColorByName(name string) (ProductColor, bool) {
	for _, c := range p.Colors {
		if c.Name == name {
			return c, true
		}
	}
	return ProductColor{}, false
}

// ProductInput is the request body for creating or updating a product.
// Both the legacy image_url and the images list are accepted.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Images      []string        `json:"images" validate:"omitempty,dive,required"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	Available   *bool           `json:"available"`
	Colors      []ProductColor  `json:"colors" validate:"omitempty,unique=Name,dive"`
}

// Normalize treats a blank category_id as no category. It runs before
// validation so the uuid check only sees real ids.
func (in *ProductInput) Normalize() {
	if in.CategoryID != nil && strings.TrimSpace(*in.CategoryID) == "" {
		in.CategoryID = nil
	}
}

// ResolveImages returns the image list the input asks for and whether the
// input mentioned images at all.
func (in *ProductInput) ResolveImages() ([]string, bool) {
	if in.Images != nil {
		return in.Images, true
	}
	if in.ImageURL != nil {
		if *in.ImageURL == "" {
			return []string{}, true
		}
		return []string{*in.ImageURL}, true
	}
	return []string{}, false
}

// ProductFilters narrows the public product list
type ProductFilters struct {
	CategoryID string `json:"category,omitempty"`
	Search     string `json:"search,omitempty"`
}
