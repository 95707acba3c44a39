package controller

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"mugix-storefront/imageset"
	"mugix-storefront/models"
	"mugix-storefront/repository"
	"mugix-storefront/service"
)

// fakeCatalog is an in-memory CatalogServiceInterface
type fakeCatalog struct {
	products   map[string]*models.Product
	categories map[string]*models.Category
	savedImgs  []string
	err        error
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	f := &fakeCatalog{
		products:   map[string]*models.Product{},
		categories: map[string]*models.Category{},
	}
	for _, p := range products {
		p.Normalize()
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if in.Price.IsNegative() {
		return nil, service.ErrNegativePrice
	}
	images, _ := in.ResolveImages()
	p := &models.Product{ID: "new", Name: in.Name, Price: in.Price, Images: images, CategoryID: in.CategoryID, Available: true}
	p.Normalize()
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Name = in.Name
	p.Price = in.Price
	return p, nil
}

func (f *fakeCatalog) SetProductImages(ctx context.Context, id string, images []string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	f.savedImgs = images
	p.Images = images
	p.Normalize()
	return p, nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCatalog) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	c := &models.Category{ID: "cat-new", Name: in.Name, Description: in.Description}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCatalog) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = in.Name
	return c, nil
}

func (f *fakeCatalog) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

// fakeUploader stores files under /uploads/<name> and fails the names in fail
type fakeUploader struct {
	mu   sync.Mutex
	fail map[string]bool
}

func (u *fakeUploader) Upload(ctx context.Context, f imageset.File) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := imageset.Validate(f); err != nil {
		return "", err
	}
	if u.fail[f.Name()] {
		return "", errors.New("storage unavailable")
	}
	return "/uploads/" + f.Name(), nil
}

// fakeContacts is an in-memory ContactRepositoryInterface
type fakeContacts struct {
	contacts []models.Contact
}

func (r *fakeContacts) List(ctx context.Context) ([]models.Contact, error) {
	return r.contacts, nil
}

func (r *fakeContacts) Create(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	c := models.Contact{
		ID:        "msg-1",
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
	}
	r.contacts = append(r.contacts, c)
	return &c, nil
}

func (r *fakeContacts) Delete(ctx context.Context, id string) error {
	for i, c := range r.contacts {
		if c.ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func mugProduct() *models.Product {
	return &models.Product{
		ID:        "prod-1",
		Name:      "Mug Ember Noir",
		Price:     decimal.RequireFromString("129"),
		Available: true,
		Images:    []string{"/uploads/a.jpg", "/uploads/b.jpg"},
		Colors: []models.ProductColor{
			{Name: "Noir", Hex: "#000000"},
			{Name: "Bordeaux", Hex: "#800020"},
		},
	}
}
