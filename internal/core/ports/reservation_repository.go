package ports

import (
	"context"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// ReservationFilter carries the query parameters for listing reservations.
// CustomerID/FarmerID scoping is always applied by the service layer (RBAC).
type ReservationFilter struct {
	CustomerID string
	FarmerID   string
	Status     domain.ReservationStatus
	Page       Page
}

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	// List returns a page of reservations matching filter and the total count.
	List(ctx context.Context, filter ReservationFilter) ([]*domain.Reservation, int64, error)
}
