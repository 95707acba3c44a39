package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mugix-storefront/models"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger}
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	var description sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &description, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Description = nullableString(description)
	return &c, nil
}

// List returns all categories sorted by name
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		r.logger.Error("failed to query categories", zap.Error(err))
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// GetByID returns one category
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	c, err := scanCategory(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at
		FROM categories
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`, in.Name, in.Description))
	if err != nil {
		r.logger.Error("failed to insert category", zap.String("name", in.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	r.logger.Info("category created", zap.String("id", c.ID), zap.String("name", c.Name))
	return c, nil
}

// Update replaces name and description
func (r *CategoryRepository) Update(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	c, err := scanCategory(r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, name, description, created_at
	`, id, in.Name, in.Description))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update category", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// Delete removes a category. Products referencing it keep existing with
// no category (ON DELETE SET NULL).
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	r.logger.Info("category deleted", zap.String("id", id))
	return nil
}
