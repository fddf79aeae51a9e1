package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiva-srivastav/zest-products/internal/domain"
	"github.com/shiva-srivastav/zest-products/pkg/database"
	apperrors "github.com/shiva-srivastav/zest-products/pkg/errors"
	"github.com/shiva-srivastav/zest-products/pkg/pagination"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product and fills in the generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO product (product_name, description, created_by, modified_by, created_on, modified_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		p.ProductName,
		p.Description,
		p.CreatedBy,
		p.ModifiedBy,
		p.CreatedOn,
		p.ModifiedOn,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its identifier, including its item count.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT p.id, p.product_name, p.description, p.created_by, p.modified_by, p.created_on, p.modified_on,
		       (SELECT COUNT(*) FROM item i WHERE i.product_id = p.id) AS item_count
		FROM product p
		WHERE p.id = $1`

	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.ProductName,
		&p.Description,
		&p.CreatedBy,
		&p.ModifiedBy,
		&p.CreatedOn,
		&p.ModifiedOn,
		&p.ItemCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// List returns a page of products with the total count. The sort column is
// whitelisted by the caller; search matches product name or creator.
func (r *ProductRepository) List(ctx context.Context, params pagination.Params, search string) ([]domain.Product, int, error) {
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	sortDir := "ASC"
	if params.SortDir == "desc" {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.product_name, p.description, p.created_by, p.modified_by, p.created_on, p.modified_on,
		       (SELECT COUNT(*) FROM item i WHERE i.product_id = p.id) AS item_count,
		       COUNT(*) OVER() AS total_count
		FROM product p
		WHERE ($1 = '' OR p.product_name ILIKE '%%' || $1 || '%%' OR p.created_by ILIKE '%%' || $1 || '%%')
		ORDER BY p.%s %s
		LIMIT $2 OFFSET $3`, sortBy, sortDir)

	rows, err := r.db.Query(ctx, query, search, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	var total int
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.ProductName,
			&p.Description,
			&p.CreatedBy,
			&p.ModifiedBy,
			&p.CreatedOn,
			&p.ModifiedOn,
			&p.ItemCount,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, total, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE product
		SET product_name = $1, description = $2, modified_by = $3, modified_on = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query,
		p.ProductName,
		p.Description,
		p.ModifiedBy,
		p.ModifiedOn,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product. Items are removed by the ON DELETE CASCADE
// constraint on the item table.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// --- Item Repository ---

// ItemRepository implements repository.ItemRepository using PostgreSQL.
type ItemRepository struct {
	db database.DBTX
}

// NewItemRepository creates a new PostgreSQL-backed item repository.
func NewItemRepository(db database.DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item under a product and fills in the generated ID.
func (r *ItemRepository) Create(ctx context.Context, it *domain.Item) error {
	if it.CreatedOn.IsZero() {
		it.CreatedOn = time.Now().UTC()
	}

	query := `
		INSERT INTO item (product_id, item_name, quantity, created_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		it.ProductID,
		it.ItemName,
		it.Quantity,
		it.CreatedOn,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// GetByID retrieves an item belonging to the given product.
func (r *ItemRepository) GetByID(ctx context.Context, productID, itemID int64) (*domain.Item, error) {
	query := `
		SELECT id, product_id, item_name, quantity, created_on
		FROM item
		WHERE id = $1 AND product_id = $2`

	var it domain.Item
	err := r.db.QueryRow(ctx, query, itemID, productID).Scan(
		&it.ID,
		&it.ProductID,
		&it.ItemName,
		&it.Quantity,
		&it.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("item", itemID)
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}

	return &it, nil
}

// ListByProduct returns all items for the given product.
func (r *ItemRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Item, error) {
	query := `
		SELECT id, product_id, item_name, quantity, created_on
		FROM item
		WHERE product_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(
			&it.ID,
			&it.ProductID,
			&it.ItemName,
			&it.Quantity,
			&it.CreatedOn,
		); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}

	if items == nil {
		items = []domain.Item{}
	}

	return items, nil
}

// Update modifies an existing item under a product.
func (r *ItemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `
		UPDATE item
		SET item_name = $1, quantity = $2
		WHERE id = $3 AND product_id = $4`

	ct, err := r.db.Exec(ctx, query,
		it.ItemName,
		it.Quantity,
		it.ID,
		it.ProductID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("item", it.ID)
	}

	return nil
}

// Delete removes an item belonging to the given product.
func (r *ItemRepository) Delete(ctx context.Context, productID, itemID int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM item WHERE id = $1 AND product_id = $2`, itemID, productID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("item", itemID)
	}

	return nil
}
