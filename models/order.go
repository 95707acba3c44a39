package models

// OrderColorRequest is one color allocation, in the order the customer picked it
type OrderColorRequest struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1,lte=10"`
}

// ComposeOrderRequest represents the request body of POST /api/products/:id/order
// Example: {"quantity": 2, "colors": [{"name": "Bordeaux", "count": 2}], "customize": true, "note": "Prénom: Sara"}
type ComposeOrderRequest struct {
	Quantity  int                 `json:"quantity" validate:"gte=1,lte=10"`
	Colors    []OrderColorRequest `json:"colors" validate:"omitempty,dive"`
	Customize bool                `json:"customize"`
	Note      string              `json:"note" validate:"max=1000"`
}

// ComposeOrderResponse carries the composed summary and, when the order can
// be submitted, the prefilled outbound links.
type ComposeOrderResponse struct {
	Complete    bool     `json:"complete"`
	CanSubmit   bool     `json:"canSubmit"`
	Lines       []string `json:"lines"`
	Summary     string   `json:"summary"`
	WhatsAppURL string   `json:"whatsappUrl,omitempty"`
	MailtoURL   string   `json:"mailtoUrl,omitempty"`
}
