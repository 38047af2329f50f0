package ports

import (
	"context"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// CreateReservationInput carries all data needed to reserve produce.
type CreateReservationInput struct {
	CustomerID string
	ProductID  string
	Quantity   int
	Notes      string
}

// ListReservationsResult is returned by List.
type ListReservationsResult struct {
	Items []*domain.Reservation
	Total int64
	Page  Page
}

// ReservationService defines use-case operations for the reservation flow.
// All operations enforce visibility: customers see their own reservations,
// farmers see reservations on their produce, admins see everything.
type ReservationService interface {
	// Create reserves qty units of a product, computing the total and the
	// 30% deposit due. Fails with PRODUCT_OUT_OF_STOCK when stock is short.
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, actor *domain.Identity, id string) (*domain.Reservation, error)
	List(ctx context.Context, actor *domain.Identity, status domain.ReservationStatus, page Page) (*ListReservationsResult, error)
	// ConfirmDeposit records a deposit payment of amount and moves the
	// reservation from pending_payment to confirmed. Fails with
	// INSUFFICIENT_BALANCE when amount is below the deposit due.
	ConfirmDeposit(ctx context.Context, actor *domain.Identity, id string, amount float64) (*domain.Reservation, error)
	// UpdateStatus applies a fulfilment transition (ready_for_pickup,
	// picked_up, delivered, refunded). Farmer or admin only.
	UpdateStatus(ctx context.Context, actor *domain.Identity, id string, next domain.ReservationStatus) (*domain.Reservation, error)
	// Cancel cancels a reservation and returns the reserved units to stock.
	Cancel(ctx context.Context, actor *domain.Identity, id string) (*domain.Reservation, error)
}
