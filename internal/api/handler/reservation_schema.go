package handler

import (
	"time"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// --- Request / Response types ---

type createReservationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gte=1"`
	Notes     string `json:"notes"      validate:"omitempty,max=500"`
}

type confirmDepositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type updateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ready_for_pickup picked_up delivered refunded"`
}

type reservationResponse struct {
	ID               string    `json:"id"`
	ReferenceCode    string    `json:"reference_code"`
	CustomerID       string    `json:"customer_id"`
	FarmerID         string    `json:"farmer_id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	Quantity         int       `json:"quantity"`
	UnitPrice        float64   `json:"unit_price"`
	TotalAmount      float64   `json:"total_amount"`
	DepositDue       float64   `json:"deposit_due"`
	DepositPaid      float64   `json:"deposit_paid"`
	RemainingBalance float64   `json:"remaining_balance"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toReservationResponse(r *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:               r.ID,
		ReferenceCode:    r.ReferenceCode,
		CustomerID:       r.CustomerID,
		FarmerID:         r.FarmerID,
		ProductID:        r.ProductID,
		ProductName:      r.ProductName,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		TotalAmount:      r.TotalAmount,
		DepositDue:       r.DepositDue,
		DepositPaid:      r.DepositPaid,
		RemainingBalance: r.RemainingBalance,
		Status:           string(r.Status),
		PaymentStatus:    string(r.PaymentStatus),
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toReservationResponses(items []*domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReservationResponse(r))
	}
	return out
}
