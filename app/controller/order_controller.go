package controller

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mugix-storefront/config"
	"mugix-storefront/models"
	"mugix-storefront/order"
	"mugix-storefront/service"
	"mugix-storefront/utils"
)

// OrderController composes outbound order messages. Orders are never
// stored: the response carries the prefilled WhatsApp and email links.
type OrderController struct {
	catalog    service.CatalogServiceInterface
	storefront config.Storefront
	logger     *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(catalog service.CatalogServiceInterface, storefront config.Storefront, logger *zap.Logger) *OrderController {
	return &OrderController{
		catalog:    catalog,
		storefront: storefront,
		logger:     logger,
	}
}

func (c *OrderController) productURL(id string) string {
	base := strings.TrimRight(c.storefront.PublicBaseURL, "/")
	if base == "" {
		return ""
	}
	return base + "/products/" + id
}

func (c *OrderController) orderProduct(p *models.Product) order.Product {
	colors := make([]string, len(p.Colors))
	for i, col := range p.Colors {
		colors[i] = col.Name
	}
	return order.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Colors:    colors,
		Available: p.Available,
		URL:       c.productURL(p.ID),
	}
}

// ComposeOrder handles POST /api/products/{id}/order
// Example body: {"quantity": 2, "colors": [{"name": "Bordeaux", "count": 2}], "customize": false}
func (c *OrderController) ComposeOrder(w http.ResponseWriter, r *http.Request) {
	var req models.ComposeOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := c.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, c.logger, "load product", err, "Product not found")
		return
	}

	colors := make([]order.ColorCount, len(req.Colors))
	for i, col := range req.Colors {
		colors[i] = order.ColorCount{Name: col.Name, Count: col.Count}
	}

	sel, err := order.Replay(c.orderProduct(product), req.Quantity, colors, req.Customize, req.Note)
	if err != nil {
		writeServiceError(w, c.logger, "compose order", err, "")
		return
	}

	text := sel.SummaryText()
	resp := models.ComposeOrderResponse{
		Complete:  sel.IsComplete(),
		CanSubmit: sel.CanSubmit(),
		Lines:     sel.ComposeSummary(),
		Summary:   text,
	}
	if resp.CanSubmit {
		resp.WhatsAppURL = order.WhatsAppURL(c.storefront.WhatsAppNumber, text)
		resp.MailtoURL = order.MailtoURL(c.storefront.OrderEmail, sel.MailSubject(), text)
	}

	c.logger.Info("order composed",
		zap.String("product", product.ID),
		zap.Int("quantity", sel.Quantity()),
		zap.Bool("can_submit", resp.CanSubmit))
	_ = utils.WriteJSON(w, http.StatusOK, resp)
}
