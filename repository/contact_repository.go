package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"mugix-storefront/models"
)

// ContactRepository handles database operations for contact messages
type ContactRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *sql.DB, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{db: db, logger: logger}
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)

func scanContact(row rowScanner) (*models.Contact, error) {
	var c models.Contact
	var phone sql.NullString
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &c.Message, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Phone = nullableString(phone)
	return &c, nil
}

// List returns contact messages newest first
func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, message, created_at
		FROM contacts
		ORDER BY created_at DESC
	`)
	if err != nil {
		r.logger.Error("failed to query contacts", zap.Error(err))
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

// Create stores a contact message
func (r *ContactRepository) Create(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (first_name, last_name, email, phone, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, email, phone, message, created_at
	`, in.FirstName, in.LastName, in.Email, in.Phone, in.Message))
	if err != nil {
		r.logger.Error("failed to insert contact", zap.String("email", in.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}
	r.logger.Info("contact message received", zap.String("id", c.ID))
	return c, nil
}

// Delete removes a contact message
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return expectOneRow(res)
}
