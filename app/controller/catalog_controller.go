package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// CatalogRenderer produces the printable catalog
type CatalogRenderer interface {
	RenderCatalogHTML(ctx context.Context) (string, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
}

// CatalogController handles HTTP requests for catalog export
type CatalogController struct {
	renderer CatalogRenderer
	logger   *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(renderer CatalogRenderer, logger *zap.Logger) *CatalogController {
	return &CatalogController{renderer: renderer, logger: logger}
}

// CatalogPDF handles GET /api/admin/catalog.pdf
// ?format=html returns the HTML the PDF is printed from
func (c *CatalogController) CatalogPDF(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "html" {
		html, err := c.renderer.RenderCatalogHTML(r.Context())
		if err != nil {
			writeServiceError(w, c.logger, "render catalog", err, "")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
		return
	}

	pdfData, err := c.renderer.GeneratePDF(r.Context())
	if err != nil {
		writeServiceError(w, c.logger, "generate catalog PDF", err, "")
		return
	}

	filename := fmt.Sprintf("catalogue-mugix-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		c.logger.Warn("failed to write PDF response", zap.Error(err))
	}
}
