package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPendingPayment ReservationStatus = "pending_payment"
	ReservationConfirmed      ReservationStatus = "confirmed"
	ReservationReadyForPickup ReservationStatus = "ready_for_pickup"
	ReservationPickedUp       ReservationStatus = "picked_up"
	ReservationDelivered      ReservationStatus = "delivered"
	ReservationCancelled      ReservationStatus = "cancelled"
	ReservationRefunded       ReservationStatus = "refunded"
)

// validTransitions defines the allowed state machine transitions. A customer
// confirms by paying the deposit; farmers drive fulfilment; cancellation is
// possible until the produce has been picked up.
var validTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPendingPayment: {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed:      {ReservationReadyForPickup, ReservationCancelled},
	ReservationReadyForPickup: {ReservationPickedUp, ReservationCancelled},
	ReservationPickedUp:       {ReservationDelivered},
	ReservationCancelled:      {ReservationRefunded},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks the deposit payment attached to a reservation.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Reservation is the core aggregate: a customer's claim on a quantity of a
// farmer's produce, secured by a 30% deposit.
type Reservation struct {
	ID               string            `json:"id"`
	ReferenceCode    string            `json:"reference_code"`
	CustomerID       string            `json:"customer_id"`
	FarmerID         string            `json:"farmer_id"`
	ProductID        string            `json:"product_id"`
	ProductName      string            `json:"product_name"`
	Quantity         int               `json:"quantity"`
	UnitPrice        float64           `json:"unit_price"`
	TotalAmount      float64           `json:"total_amount"`
	DepositDue       float64           `json:"deposit_due"`
	DepositPaid      float64           `json:"deposit_paid"`
	RemainingBalance float64           `json:"remaining_balance"`
	Status           ReservationStatus `json:"status"`
	PaymentStatus    PaymentStatus     `json:"payment_status"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
