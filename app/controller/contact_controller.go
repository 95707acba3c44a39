package controller

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mugix-storefront/models"
	"mugix-storefront/repository"
	"mugix-storefront/utils"
)

// ContactController handles the public contact form and its admin inbox
type ContactController struct {
	repository repository.ContactRepositoryInterface
	logger     *zap.Logger
}

// NewContactController creates a new ContactController
func NewContactController(repo repository.ContactRepositoryInterface, logger *zap.Logger) *ContactController {
	return &ContactController{repository: repo, logger: logger}
}

// CreateContact handles POST /api/contacts
func (c *ContactController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if !decodeAndValidate(w, r, &in) {
		return
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) == "" {
		in.Phone = nil
	}

	contact, err := c.repository.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, c.logger, "create contact", err, "")
		return
	}
	_ = utils.WriteJSON(w, http.StatusCreated, contact)
}

// ListContacts handles GET /api/contacts
func (c *ContactController) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := c.repository.List(r.Context())
	if err != nil {
		writeServiceError(w, c.logger, "list contacts", err, "")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, contacts)
}

// DeleteContact handles DELETE /api/contacts/{id}
func (c *ContactController) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := c.repository.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, c.logger, "delete contact", err, "Message not found")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, messageResponse{Message: "Message deleted successfully"})
}
