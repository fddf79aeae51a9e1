package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiva-srivastav/zest-products/internal/domain"
	"github.com/shiva-srivastav/zest-products/internal/event"
	"github.com/shiva-srivastav/zest-products/internal/repository"
	"github.com/shiva-srivastav/zest-products/pkg/pagination"
)

// ProductService implements the product catalog operations. The actor
// parameter on mutating calls is the authenticated username recorded in the
// audit columns.
type ProductService struct {
	products repository.ProductRepository
	items    repository.ItemRepository
	events   *event.Producer
	logger   *slog.Logger
}

// NewProductService creates a new product service. The event producer may be
// nil, in which case no events are published.
func NewProductService(
	products repository.ProductRepository,
	items repository.ItemRepository,
	events *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		products: products,
		items:    items,
		events:   events,
		logger:   logger,
	}
}

// ProductInput holds the writable product fields.
type ProductInput struct {
	ProductName string
	Description string
}

// ItemInput holds the writable item fields.
type ItemInput struct {
	ItemName string
	Quantity int
}

// CreateProduct creates a new catalog entry attributed to the actor.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput, actor string) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ProductName: in.ProductName,
		Description: in.Description,
		CreatedBy:   actor,
		ModifiedBy:  actor,
		CreatedOn:   now,
		ModifiedOn:  now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("actor", actor),
	)

	if s.events != nil {
		if err := s.events.PublishProductCreated(ctx, product); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.created event",
				slog.String("error", err.Error()),
			)
		}
	}

	return product, nil
}

// GetProduct retrieves a product by its identifier.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns a page of products, optionally filtered by search.
func (s *ProductService) ListProducts(ctx context.Context, params pagination.Params, search string) (pagination.Result[domain.Product], error) {
	products, total, err := s.products.List(ctx, params, search)
	if err != nil {
		return pagination.Result[domain.Product]{}, err
	}
	return pagination.NewResult(products, total, params), nil
}

// UpdateProduct modifies an existing product, recording the actor as modifier.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in ProductInput, actor string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ProductName = in.ProductName
	product.Description = in.Description
	product.ModifiedBy = actor
	product.ModifiedOn = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.Int64("product_id", product.ID),
		slog.String("actor", actor),
	)

	if s.events != nil {
		if err := s.events.PublishProductUpdated(ctx, product); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.updated event",
				slog.String("error", err.Error()),
			)
		}
	}

	return product, nil
}

// DeleteProduct removes a product and its items.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64, actor string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", id),
		slog.String("actor", actor),
	)

	if s.events != nil {
		if err := s.events.PublishProductDeleted(ctx, id, actor); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// AddItem creates a new item under an existing product.
func (s *ProductService) AddItem(ctx context.Context, productID int64, in ItemInput) (*domain.Item, error) {
	// Verify the parent exists so a missing product reports 404 rather than
	// a foreign key violation.
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ProductID: productID,
		ItemName:  in.ItemName,
		Quantity:  in.Quantity,
		CreatedOn: time.Now().UTC(),
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added",
		slog.Int64("product_id", productID),
		slog.Int64("item_id", item.ID),
	)

	return item, nil
}

// GetItem retrieves an item belonging to the given product.
func (s *ProductService) GetItem(ctx context.Context, productID, itemID int64) (*domain.Item, error) {
	return s.items.GetByID(ctx, productID, itemID)
}

// ListItems returns all items for the given product.
func (s *ProductService) ListItems(ctx context.Context, productID int64) ([]domain.Item, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.items.ListByProduct(ctx, productID)
}

// UpdateItem modifies an existing item under a product.
func (s *ProductService) UpdateItem(ctx context.Context, productID, itemID int64, in ItemInput) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, productID, itemID)
	if err != nil {
		return nil, err
	}

	item.ItemName = in.ItemName
	item.Quantity = in.Quantity

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item belonging to the given product.
func (s *ProductService) DeleteItem(ctx context.Context, productID, itemID int64) error {
	if err := s.items.Delete(ctx, productID, itemID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "item deleted",
		slog.Int64("product_id", productID),
		slog.Int64("item_id", itemID),
	)

	return nil
}
