package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/money"
	"github.com/farm2door/marketplace/internal/core/ports"
)

// ReservationService implements the reservation flow: customers reserve
// produce, pay a 30% deposit, and pick up or receive delivery.
type ReservationService struct {
	reservations ports.ReservationRepository
	products     ports.ProductRepository
	dispatcher   ports.NotificationDispatcher
	logger       zerolog.Logger
}

func NewReservationService(
	reservations ports.ReservationRepository,
	products ports.ProductRepository,
	dispatcher ports.NotificationDispatcher,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		products:     products,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (s *ReservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if product.Stage == domain.StageFinished {
		return nil, domain.NewOutOfStock("Product is no longer available")
	}

	// Reserve stock first; DecrementStock is atomic, so two concurrent
	// reservations cannot both claim the last units.
	if err := s.products.DecrementStock(ctx, product.ID, input.Quantity); err != nil {
		return nil, err
	}

	total := money.TotalAmount(input.Quantity, product.UnitPrice)
	reservation := &domain.Reservation{
		ReferenceCode:    generateReferenceCode(),
		CustomerID:       input.CustomerID,
		FarmerID:         product.FarmerID,
		ProductID:        product.ID,
		ProductName:      product.Name,
		Quantity:         input.Quantity,
		UnitPrice:        product.UnitPrice,
		TotalAmount:      total,
		DepositDue:       money.Deposit(total),
		RemainingBalance: money.RemainingBalance(total),
		Status:           domain.ReservationPendingPayment,
		PaymentStatus:    domain.PaymentPending,
		Notes:            input.Notes,
	}

	created, err := s.reservations.Create(ctx, reservation)
	if err != nil {
		// Return the claimed units; the reservation never existed.
		if restockErr := s.products.IncrementStock(ctx, product.ID, input.Quantity); restockErr != nil {
			s.logger.Error().Err(restockErr).Str("product_id", product.ID).Msg("failed to restock after create failure")
		}
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", created.ID).
		Str("reference_code", created.ReferenceCode).
		Float64("deposit_due", created.DepositDue).
		Msg("reservation created")

	s.dispatcher.Enqueue(domain.Notification{
		UserID:  product.FarmerID,
		Type:    domain.NotifyReservationCreated,
		Title:   "New reservation",
		Message: fmt.Sprintf("%d x %s reserved (ref %s)", created.Quantity, created.ProductName, created.ReferenceCode),
	})

	return created, nil
}

func (s *ReservationService) Get(ctx context.Context, actor *domain.Identity, id string) (*domain.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.visibleTo(actor, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) List(ctx context.Context, actor *domain.Identity, status domain.ReservationStatus, page ports.Page) (*ports.ListReservationsResult, error) {
	if actor == nil {
		return nil, domain.NewUnauthorized("Authentication required")
	}

	filter := ports.ReservationFilter{Status: status, Page: page}
	switch actor.Role {
	case domain.RoleCustomer:
		filter.CustomerID = actor.UserID
	case domain.RoleFarmer:
		filter.FarmerID = actor.UserID
	case domain.RoleAdmin:
		// unscoped
	default:
		return nil, domain.NewForbidden("")
	}

	items, total, err := s.reservations.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListReservationsResult{Items: items, Total: total, Page: page}, nil
}

func (s *ReservationService) ConfirmDeposit(ctx context.Context, actor *domain.Identity, id string, amount float64) (*domain.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.visibleTo(actor, reservation); err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(domain.ReservationConfirmed) {
		return nil, domain.NewConflict(fmt.Sprintf("Cannot confirm a reservation in status %s", reservation.Status))
	}
	if amount < reservation.DepositDue {
		return nil, domain.NewInsufficientBalance(fmt.Sprintf(
			"Deposit of %.2f is below the %.2f due", amount, reservation.DepositDue))
	}

	reservation.DepositPaid = money.Round2(amount)
	reservation.Status = domain.ReservationConfirmed
	reservation.PaymentStatus = domain.PaymentCompleted

	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", reservation.ID).
		Float64("deposit_paid", reservation.DepositPaid).
		Msg("deposit confirmed")

	s.dispatcher.Enqueue(domain.Notification{
		UserID:  reservation.FarmerID,
		Type:    domain.NotifyPaymentReceived,
		Title:   "Deposit received",
		Message: fmt.Sprintf("Deposit paid for reservation %s", reservation.ReferenceCode),
	})

	return reservation, nil
}

func (s *ReservationService) UpdateStatus(ctx context.Context, actor *domain.Identity, id string, next domain.ReservationStatus) (*domain.Reservation, error) {
	if actor == nil {
		return nil, domain.NewUnauthorized("Authentication required")
	}
	if actor.Role != domain.RoleFarmer && actor.Role != domain.RoleAdmin {
		return nil, domain.NewForbidden("Only farmers can update fulfilment status")
	}

	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.visibleTo(actor, reservation); err != nil {
		return nil, err
	}

	// Cancellation has its own path so stock is returned exactly once.
	if next == domain.ReservationCancelled {
		return s.cancel(ctx, reservation)
	}
	if !reservation.Status.CanTransitionTo(next) {
		return nil, domain.NewConflict(fmt.Sprintf("Cannot move reservation from %s to %s", reservation.Status, next))
	}

	reservation.Status = next
	if next == domain.ReservationRefunded {
		reservation.PaymentStatus = domain.PaymentRefunded
	}

	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", reservation.ID).
		Str("status", string(next)).
		Msg("reservation status updated")

	s.dispatcher.Enqueue(domain.Notification{
		UserID:  reservation.CustomerID,
		Type:    domain.NotifyOrderStatusUpdate,
		Title:   "Reservation update",
		Message: fmt.Sprintf("Reservation %s is now %s", reservation.ReferenceCode, next),
	})

	return reservation, nil
}

func (s *ReservationService) Cancel(ctx context.Context, actor *domain.Identity, id string) (*domain.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.visibleTo(actor, reservation); err != nil {
		return nil, err
	}
	return s.cancel(ctx, reservation)
}

func (s *ReservationService) cancel(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if !reservation.Status.CanTransitionTo(domain.ReservationCancelled) {
		return nil, domain.NewConflict(fmt.Sprintf("Cannot cancel a reservation in status %s", reservation.Status))
	}

	reservation.Status = domain.ReservationCancelled

	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if err := s.products.IncrementStock(ctx, reservation.ProductID, reservation.Quantity); err != nil {
		s.logger.Error().Err(err).Str("product_id", reservation.ProductID).Msg("failed to restock after cancellation")
	}

	s.logger.Info().Str("reservation_id", reservation.ID).Msg("reservation cancelled")

	s.dispatcher.Enqueue(domain.Notification{
		UserID:  reservation.CustomerID,
		Type:    domain.NotifyReservationCancelled,
		Title:   "Reservation cancelled",
		Message: fmt.Sprintf("Reservation %s has been cancelled", reservation.ReferenceCode),
	})

	return reservation, nil
}

// visibleTo enforces reservation visibility: the reserving customer, the
// farmer whose produce is reserved, and admins.
func (s *ReservationService) visibleTo(actor *domain.Identity, r *domain.Reservation) error {
	if actor == nil {
		return domain.NewUnauthorized("Authentication required")
	}
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.UserID == r.CustomerID || actor.UserID == r.FarmerID {
		return nil
	}
	return domain.NewForbidden("You do not have permission to access this reservation")
}

// generateReferenceCode returns a customer-facing code in the format F2D-XXXXXXXX.
func generateReferenceCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "F2D-" + id[:8]
}
