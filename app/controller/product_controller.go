package controller

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"mugix-storefront/imageset"
	"mugix-storefront/models"
	"mugix-storefront/service"
	"mugix-storefront/utils"
)

// maxImagesRequest bounds the multipart body of an image-set save
const maxImagesRequest = 64 << 20

// ProductController handles HTTP requests for products
type ProductController struct {
	catalog  service.CatalogServiceInterface
	uploader imageset.Uploader
	logger   *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(catalog service.CatalogServiceInterface, uploader imageset.Uploader, logger *zap.Logger) *ProductController {
	return &ProductController{
		catalog:  catalog,
		uploader: uploader,
		logger:   logger,
	}
}

// ListProducts handles GET /api/products
// Optional query params: category (id), search (text)
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	filters := models.ProductFilters{
		CategoryID: r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("search"),
	}

	products, err := c.catalog.ListProducts(r.Context(), filters)
	if err != nil {
		writeServiceError(w, c.logger, "list products", err, "")
		return
	}
	writeCacheableJSON(w, r, products)
}

// GetProduct handles GET /api/products/{id}
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := c.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, c.logger, "get product", err, "Product not found")
		return
	}
	writeCacheableJSON(w, r, product)
}

// CreateProduct handles POST /api/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	product, err := c.catalog.CreateProduct(r.Context(), in)
	if err != nil {
		writeServiceError(w, c.logger, "create product", err, "")
		return
	}

	c.logger.Info("product created", zap.String("id", product.ID), zap.String("name", product.Name))
	_ = utils.WriteJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id}
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !decodeAndValidate(w, r, &in) {
		return
	}

	product, err := c.catalog.UpdateProduct(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, c.logger, "update product", err, "Product not found")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := c.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, c.logger, "delete product", err, "Product not found")
		return
	}

	c.logger.Info("product deleted", zap.String("id", id))
	_ = utils.WriteJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// UpdateImages handles PUT /api/products/{id}/images
//
// Multipart form:
//   - remove: stored image URLs to drop (repeatable)
//   - images: new files, appended in order (repeatable)
//   - primary: optional index, after removals and additions, of the image
//     to move to the front
//
// Rejected files and failed uploads are reported in the response; the
// remaining images are saved.
func (c *ProductController) UpdateImages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxImagesRequest)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	product, err := c.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, c.logger, "load product", err, "Product not found")
		return
	}

	set := imageset.FromURLs(product.Images)
	for _, u := range r.MultipartForm.Value["remove"] {
		if i := set.IndexOfURL(u); i >= 0 {
			set = set.Remove(set.Items()[i].ID)
		}
	}

	var files []imageset.File
	for _, fh := range r.MultipartForm.File["images"] {
		files = append(files, imageset.FromMultipart(fh))
	}
	set, rejected := set.AddFiles(r.Context(), files)

	if raw := r.FormValue("primary"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "primary must be an index")
			return
		}
		if set, err = set.Move(idx, 0); err != nil {
			writeServiceError(w, c.logger, "reorder images", err, "")
			return
		}
	}

	result := set.Commit(r.Context(), c.uploader)

	updated, err := c.catalog.SetProductImages(r.Context(), id, result.URLs)
	if err != nil {
		writeServiceError(w, c.logger, "save product images", err, "Product not found")
		return
	}

	resp := models.ProductImagesResponse{
		Product:  updated,
		Primary:  result.Primary,
		Rejected: []models.FileIssue{},
		Failed:   []models.FileIssue{},
	}
	for _, rj := range rejected {
		resp.Rejected = append(resp.Rejected, models.FileIssue{File: rj.File, Reason: rj.Err.Error()})
	}
	for _, f := range result.Failures {
		resp.Failed = append(resp.Failed, models.FileIssue{File: f.File, Reason: f.Err.Error()})
	}

	c.logger.Info("product images saved",
		zap.String("id", id),
		zap.Int("images", len(result.URLs)),
		zap.Int("rejected", len(resp.Rejected)),
		zap.Int("failed", len(resp.Failed)))
	_ = utils.WriteJSON(w, http.StatusOK, resp)
}
