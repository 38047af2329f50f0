package ports

import (
	"context"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// ProductFilter carries the query parameters for listing products.
type ProductFilter struct {
	FarmerID string               // optional: scope to one farmer's listings
	Stage    domain.PlantingStage // optional: filter by planting stage
	Search   string               // optional: partial match on name or farm name
	Page     Page
}

// ProductRepository defines persistence operations for produce listings.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	// DecrementStock atomically subtracts qty from the product's quantity.
	// Fails with PRODUCT_OUT_OF_STOCK when fewer than qty units remain.
	DecrementStock(ctx context.Context, id string, qty int) error
	// IncrementStock returns qty units to the product (reservation cancelled).
	IncrementStock(ctx context.Context, id string, qty int) error
}
