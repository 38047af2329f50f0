// Package money holds the pure monetary arithmetic used by the reservation
// flow. Every helper rounds to 2 decimals (half away from zero at the cent
// boundary) before returning, so amounts never carry sub-cent precision.
package money

import (
	"math"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// DepositRate is the upfront deposit collected on every reservation.
const DepositRate = 0.30

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Deposit returns the 30% deposit due on a reservation total.
func Deposit(total float64) float64 {
	return Round2(total * DepositRate)
}

// RemainingBalance returns the 70% balance due at pickup or delivery.
func RemainingBalance(total float64) float64 {
	return Round2(total * (1 - DepositRate))
}

// TotalAmount returns the total for a quantity at a unit price.
func TotalAmount(quantity int, unitPrice float64) float64 {
	return Round2(float64(quantity) * unitPrice)
}

// ApplyDiscount reduces amount by percent. Percent must be within [0, 100].
func ApplyDiscount(amount, percent float64) (float64, error) {
	if percent < 0 || percent > 100 {
		return 0, domain.NewValidationError(domain.FieldError{
			Field:   "percent",
			Message: "Discount percentage must be between 0 and 100",
		})
	}
	return Round2(amount * (1 - percent/100)), nil
}

// PercentageOf returns percent of amount.
func PercentageOf(amount, percent float64) float64 {
	return Round2(amount * percent / 100)
}
