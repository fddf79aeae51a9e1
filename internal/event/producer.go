package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shiva-srivastav/zest-products/internal/domain"
	pkgkafka "github.com/shiva-srivastav/zest-products/pkg/kafka"
)

// Kafka topic constants for catalog and user domain events.
const (
	TopicUserRegistered = "zest.user.registered"
	TopicProductCreated = "zest.product.created"
	TopicProductUpdated = "zest.product.updated"
	TopicProductDeleted = "zest.product.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from this service.
const SourceProductsService = "zest-products"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ProductData is the payload for product.created and product.updated events.
type ProductData struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
	Description string `json:"description,omitempty"`
	Actor       string `json:"actor"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID    int64  `json:"id"`
	Actor string `json:"actor"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role.String(),
	}

	return p.publish(ctx, TopicUserRegistered, strconv.FormatInt(user.ID, 10), AggregateTypeUser, data)
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductData{
		ID:          product.ID,
		ProductName: product.ProductName,
		Description: product.Description,
		Actor:       product.CreatedBy,
	}

	return p.publish(ctx, TopicProductCreated, strconv.FormatInt(product.ID, 10), AggregateTypeProduct, data)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	data := ProductData{
		ID:          product.ID,
		ProductName: product.ProductName,
		Description: product.Description,
		Actor:       product.ModifiedBy,
	}

	return p.publish(ctx, TopicProductUpdated, strconv.FormatInt(product.ID, 10), AggregateTypeProduct, data)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, productID int64, actor string) error {
	data := ProductDeletedData{
		ID:    productID,
		Actor: actor,
	}

	return p.publish(ctx, TopicProductDeleted, strconv.FormatInt(productID, 10), AggregateTypeProduct, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceProductsService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
