package money

import (
	"testing"

	"github.com/farm2door/marketplace/internal/core/domain"
)

func TestDeposit(t *testing.T) {
	if got := Deposit(100); got != 30.00 {
		t.Fatalf("Deposit(100) = %v, want 30.00", got)
	}
	if got := Deposit(99.99); got != 30.00 {
		t.Fatalf("Deposit(99.99) = %v, want 30.00", got)
	}
	if got := Deposit(0); got != 0 {
		t.Fatalf("Deposit(0) = %v, want 0", got)
	}
}

func TestRemainingBalance(t *testing.T) {
	if got := RemainingBalance(100); got != 70.00 {
		t.Fatalf("RemainingBalance(100) = %v, want 70.00", got)
	}
	if got := RemainingBalance(99.99); got != 69.99 {
		t.Fatalf("RemainingBalance(99.99) = %v, want 69.99", got)
	}
}

func TestTotalAmount(t *testing.T) {
	if got := TotalAmount(3, 5.99); got != 17.97 {
		t.Fatalf("TotalAmount(3, 5.99) = %v, want 17.97", got)
	}
	if got := TotalAmount(4, 2.5); got != 10.00 {
		t.Fatalf("TotalAmount(4, 2.5) = %v, want 10.00", got)
	}
}

func TestApplyDiscount(t *testing.T) {
	got, err := ApplyDiscount(100, 10)
	if err != nil {
		t.Fatalf("ApplyDiscount(100, 10) returned error: %v", err)
	}
	if got != 90.00 {
		t.Fatalf("ApplyDiscount(100, 10) = %v, want 90.00", got)
	}

	got, err = ApplyDiscount(100, 0)
	if err != nil || got != 100.00 {
		t.Fatalf("ApplyDiscount(100, 0) = %v, %v, want 100.00", got, err)
	}

	got, err = ApplyDiscount(100, 100)
	if err != nil || got != 0.00 {
		t.Fatalf("ApplyDiscount(100, 100) = %v, %v, want 0.00", got, err)
	}
}

func TestApplyDiscount_OutOfRange(t *testing.T) {
	for _, percent := range []float64{-1, 150} {
		_, err := ApplyDiscount(100, percent)
		if err == nil {
			t.Fatalf("ApplyDiscount(100, %v) expected error", percent)
		}
		ae, ok := domain.AsAppError(err)
		if !ok || ae.Code != domain.CodeValidationError {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	}
}

func TestPercentageOf(t *testing.T) {
	if got := PercentageOf(200, 25); got != 50.00 {
		t.Fatalf("PercentageOf(200, 25) = %v, want 50.00", got)
	}
	if got := PercentageOf(10, 33.333); got != 3.33 {
		t.Fatalf("PercentageOf(10, 33.333) = %v, want 3.33", got)
	}
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.13},
		{-0.125, -0.13},
		{2.004, 2.00},
		{17.97, 17.97},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
