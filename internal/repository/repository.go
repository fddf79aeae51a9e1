package repository

import (
	"context"
	"time"

	"github.com/shiva-srivastav/zest-products/internal/domain"
	"github.com/shiva-srivastav/zest-products/pkg/pagination"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user and fills in its generated ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines the interface for refresh token persistence
// operations. Each user holds at most one token row.
type RefreshTokenRepository interface {
	// GetByToken retrieves a refresh token record by its opaque value.
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)

	// GetByUser retrieves the refresh token row for the given user, if any.
	GetByUser(ctx context.Context, userID int64) (*domain.RefreshToken, error)

	// Replace atomically removes any existing token row for the user and
	// inserts a new one.
	Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// Delete removes a refresh token row by its opaque value.
	Delete(ctx context.Context, token string) error

	// DeleteByUser removes the refresh token row for the given user. It is a
	// no-op when none exists.
	DeleteByUser(ctx context.Context, userID int64) error
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product and fills in its generated ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its identifier, including its item count.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns a page of products with the total count. When search is
	// non-empty, products are filtered by name or creator.
	List(ctx context.Context, params pagination.Params, search string) ([]domain.Product, int, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product and its items.
	Delete(ctx context.Context, id int64) error
}

// ItemRepository defines the interface for item persistence operations.
type ItemRepository interface {
	// Create inserts a new item under a product and fills in its generated ID.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item belonging to the given product.
	GetByID(ctx context.Context, productID, itemID int64) (*domain.Item, error)

	// ListByProduct returns all items for the given product.
	ListByProduct(ctx context.Context, productID int64) ([]domain.Item, error)

	// Update modifies an existing item under a product.
	Update(ctx context.Context, item *domain.Item) error

	// Delete removes an item belonging to the given product.
	Delete(ctx context.Context, productID, itemID int64) error
}
