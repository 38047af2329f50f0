package ports

import (
	"context"
	"time"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// CreateProductInput carries all data needed to create a produce listing.
type CreateProductInput struct {
	FarmerID           string
	Name               string
	Description        string
	FarmName           string
	FarmType           string
	RegistrationNumber string
	Stage              string
	UnitPrice          float64
	Unit               string
	Quantity           int
	HarvestDate        time.Time
	ImageURL           string
}

// UpdateProductInput carries the mutable fields of a listing. Nil pointers
// mean "leave unchanged".
type UpdateProductInput struct {
	Name        *string
	Description *string
	Stage       *string
	UnitPrice   *float64
	Quantity    *int
	HarvestDate *time.Time
	ImageURL    *string
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Items []*domain.Product
	Total int64
	Page  Page
}

// ProductService defines use-case operations for the produce catalog.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) (*ListProductsResult, error)
	// Update and Delete enforce ownership: only the owning farmer or an
	// admin may modify a listing.
	Update(ctx context.Context, actor *domain.Identity, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}
