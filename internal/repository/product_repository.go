package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"product-admin/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int) error
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	List(ctx context.Context, search string, page, perPage int) ([]*domain.Product, int, error)
	CategoryIDs(ctx context.Context, productID int) ([]int, error)
	ReplaceCategories(ctx context.Context, productID int, categoryIDs []int) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product and lets the database assign its id
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (title, description, price, sale_price, is_on_sale, youtube_video, featured_image_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Title,
		product.Description,
		product.Price,
		product.SalePrice,
		product.IsOnSale,
		product.YoutubeVideo,
		product.FeaturedImageID,
		product.Status,
		product.CreatedAt,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update writes the full product row. Partial-update semantics live in the
// service layer, which loads the row first and mutates only supplied fields.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, sale_price = $5,
		    is_on_sale = $6, youtube_video = $7, featured_image_id = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.SalePrice,
		product.IsOnSale,
		product.YoutubeVideo,
		product.FeaturedImageID,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product permanently. Category associations go with it
// via the junction table's cascade.
func (r *productRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, title, description, price, sale_price, is_on_sale, youtube_video, featured_image_id, status, created_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.SalePrice,
		&product.IsOnSale,
		&product.YoutubeVideo,
		&product.FeaturedImageID,
		&product.Status,
		&product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products newest-first with optional free-text search and
// pagination, returning the total match count alongside the page.
func (r *productRepository) List(ctx context.Context, search string, page, perPage int) ([]*domain.Product, int, error) {
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if strings.TrimSpace(search) != "" {
		whereClause = fmt.Sprintf("WHERE title ILIKE $%d OR description ILIKE $%d", argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * perPage

	query := fmt.Sprintf(`
		SELECT id, title, description, price, sale_price, is_on_sale, youtube_video, featured_image_id, status, created_at
		FROM products
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, perPage, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Price,
			&product.SalePrice,
			&product.IsOnSale,
			&product.YoutubeVideo,
			&product.FeaturedImageID,
			&product.Status,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// CategoryIDs returns the ids of all categories attached to a product
func (r *productRepository) CategoryIDs(ctx context.Context, productID int) ([]int, error) {
	query := `
		SELECT category_id
		FROM product_categories
		WHERE product_id = $1
		ORDER BY category_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category ids: %w", err)
	}

	return ids, nil
}

// ReplaceCategories swaps the full category set of a product. Ids that do
// not resolve to a category are skipped rather than failing the request.
func (r *productRepository) ReplaceCategories(ctx context.Context, productID int, categoryIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear product categories: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO product_categories (product_id, category_id)
			SELECT $1, id FROM categories WHERE id = $2
			ON CONFLICT DO NOTHING
		`, productID, categoryID)
		if err != nil {
			return fmt.Errorf("failed to attach category %d: %w", categoryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category update: %w", err)
	}

	return nil
}
