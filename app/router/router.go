package router

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"mugix-storefront/app/controller"
	"mugix-storefront/app/middleware"
	"mugix-storefront/utils"
)

type Controllers struct {
	Product  *controller.ProductController
	Order    *controller.OrderController
	Category *controller.CategoryController
	Contact  *controller.ContactController
	Auth     *controller.AuthController
	Upload   *controller.UploadController
	Catalog  *controller.CatalogController
}

// Options carries everything the routes need besides the controllers
type Options struct {
	Verifier     middleware.TokenVerifier
	Metrics      *middleware.Metrics
	UploadDir    string
	UploadPrefix string
	Logger       *zap.Logger
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// healthHandler handles GET /api/health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Mugix API is running"})
}

// SetupRoutes builds the application handler
func SetupRoutes(c *Controllers, opts Options) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireAuth(opts.Verifier, opts.Logger)
	protect := func(h http.HandlerFunc) http.Handler { return admin(h) }

	mux.HandleFunc("GET /api/health", healthHandler)

	// Products
	mux.HandleFunc("GET /api/products", c.Product.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", c.Product.GetProduct)
	mux.HandleFunc("POST /api/products/{id}/order", c.Order.ComposeOrder)
	mux.Handle("POST /api/products", protect(c.Product.CreateProduct))
	mux.Handle("PUT /api/products/{id}", protect(c.Product.UpdateProduct))
	mux.Handle("DELETE /api/products/{id}", protect(c.Product.DeleteProduct))
	mux.Handle("PUT /api/products/{id}/images", protect(c.Product.UpdateImages))

	// Categories
	mux.HandleFunc("GET /api/categories", c.Category.ListCategories)
	mux.Handle("POST /api/categories", protect(c.Category.CreateCategory))
	mux.Handle("PUT /api/categories/{id}", protect(c.Category.UpdateCategory))
	mux.Handle("DELETE /api/categories/{id}", protect(c.Category.DeleteCategory))

	// Contact form
	mux.HandleFunc("POST /api/contacts", c.Contact.CreateContact)
	mux.Handle("GET /api/contacts", protect(c.Contact.ListContacts))
	mux.Handle("DELETE /api/contacts/{id}", protect(c.Contact.DeleteContact))

	// Admin
	mux.HandleFunc("POST /api/admin/login", c.Auth.Login)
	mux.Handle("POST /api/upload", protect(c.Upload.Upload))
	mux.Handle("GET /api/admin/catalog.pdf", protect(c.Catalog.CatalogPDF))

	if opts.UploadDir != "" {
		prefix := strings.TrimRight(opts.UploadPrefix, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(opts.UploadDir))))
	}
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	var handler http.Handler = mux
	if opts.Metrics != nil {
		handler = opts.Metrics.Middleware(handler)
	}
	handler = middleware.RequestLogger(opts.Logger)(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag", "Content-Disposition"},
	}).Handler(handler)
	return middleware.Recover(opts.Logger)(handler)
}
