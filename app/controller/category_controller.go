package controller

import (
	"net/http"

	"go.uber.org/zap"

	"mugix-storefront/models"
	"mugix-storefront/service"
	"mugix-storefront/utils"
)

// CategoryController handles HTTP requests for categories
type CategoryController struct {
	catalog service.CatalogServiceInterface
	logger  *zap.Logger
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(catalog service.CatalogServiceInterface, logger *zap.Logger) *CategoryController {
	return &CategoryController{catalog: catalog, logger: logger}
}

// ListCategories handles GET /api/categories
func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, c.logger, "list categories", err, "")
		return
	}
	writeCacheableJSON(w, r, categories)
}

// CreateCategory handles POST /api/categories
func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	category, err := c.catalog.CreateCategory(r.Context(), in)
	if err != nil {
		writeServiceError(w, c.logger, "create category", err, "")
		return
	}
	_ = utils.WriteJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/categories/{id}
func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	category, err := c.catalog.UpdateCategory(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, c.logger, "update category", err, "Category not found")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/{id}
// Products in the category are kept and lose their category.
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := c.catalog.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, c.logger, "delete category", err, "Category not found")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}
