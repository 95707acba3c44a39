package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mugix-storefront/models"
)

const productSelect = `
	SELECT
		p.id,
		p.name,
		p.description,
		p.price,
		p.image_url,
		p.images,
		p.category_id,
		p.available,
		p.colors,
		p.created_at,
		p.updated_at,
		c.id,
		c.name,
		c.description
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// ProductRepository handles database operations for products.
// Images and colors are stored as JSONB documents on the product row.
type ProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var description, imageURL, categoryID sql.NullString
	var catID, catName, catDescription sql.NullString
	var images, colors []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.Price,
		&imageURL,
		&images,
		&categoryID,
		&p.Available,
		&colors,
		&p.CreatedAt,
		&p.UpdatedAt,
		&catID,
		&catName,
		&catDescription,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images of product %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors of product %s: %w", p.ID, err)
	}

	p.Description = nullableString(description)
	p.ImageURL = nullableString(imageURL)
	p.CategoryID = nullableString(categoryID)
	if catID.Valid {
		p.Category = &models.CategoryRef{
			ID:          catID.String,
			Name:        catName.String,
			Description: nullableString(catDescription),
		}
	}

	p.Normalize()
	return &p, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// List returns products newest first, optionally filtered by category and
// a case-insensitive search over name and description.
func (r *ProductRepository) List(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	var where []string
	var args []any

	if filters.CategoryID != "" {
		if !validID(filters.CategoryID) {
			return []models.Product{}, nil
		}
		args = append(args, filters.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		args = append(args, "%"+search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	query := productSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query products", zap.Error(err))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	r.logger.Debug("products listed",
		zap.Int("count", len(products)),
		zap.String("category", filters.CategoryID),
		zap.String("search", filters.Search))
	return products, nil
}

// GetByID returns one product with its category
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", translate(err))
	}
	return p, nil
}

// Create inserts a product and returns it as stored
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.Normalize()
	images, colors, err := encodeDocuments(p)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products (name, description, price, image_url, images, category_id, available, colors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id string
	err = r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.ImageURL, string(images), p.CategoryID, p.Available, string(colors),
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to insert product", zap.String("name", p.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to insert product: %w", translate(err))
	}

	r.logger.Info("product created", zap.String("id", id), zap.String("name", p.Name))
	return r.GetByID(ctx, id)
}

// Update replaces every editable column of the product identified by p.ID
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if !validID(p.ID) {
		return nil, ErrNotFound
	}
	p.Normalize()
	images, colors, err := encodeDocuments(p)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products
		SET name = $2,
			description = $3,
			price = $4,
			image_url = $5,
			images = $6,
			category_id = $7,
			available = $8,
			colors = $9,
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, string(images), p.CategoryID, p.Available, string(colors),
	)
	if err != nil {
		r.logger.Error("failed to update product", zap.String("id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update product: %w", translate(err))
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, p.ID)
}

// UpdateImages stores a new ordered image list; image_url follows index 0
func (r *ProductRepository) UpdateImages(ctx context.Context, id string, images []string) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	if images == nil {
		images = []string{}
	}
	doc, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}
	var primary *string
	if len(images) > 0 {
		primary = &images[0]
	}

	query := `
		UPDATE products
		SET images = $2, image_url = $3, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, string(doc), primary)
	if err != nil {
		r.logger.Error("failed to update product images", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update product images: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	r.logger.Info("product images updated", zap.String("id", id), zap.Int("count", len(images)))
	return r.GetByID(ctx, id)
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	r.logger.Info("product deleted", zap.String("id", id))
	return nil
}

func encodeDocuments(p *models.Product) (images, colors []byte, err error) {
	imgs := p.Images
	if imgs == nil {
		imgs = []string{}
	}
	images, err = json.Marshal(imgs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode images: %w", err)
	}

	cols := p.Colors
	if cols == nil {
		cols = []models.ProductColor{}
	}
	colors, err = json.Marshal(cols)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	return images, colors, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
