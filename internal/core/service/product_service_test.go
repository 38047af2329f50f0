package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
)

func newTestProductService() (*ProductService, *stubProductRepo) {
	repo := newStubProductRepo()
	return NewProductService(repo, zerolog.Nop()), repo
}

func TestProductService_Create(t *testing.T) {
	svc, _ := newTestProductService()

	product, err := svc.Create(context.Background(), ports.CreateProductInput{
		FarmerID:           "farmer-1",
		Name:               "Rainbow Carrots",
		FarmName:           "Green Acres",
		FarmType:           "registered",
		RegistrationNumber: "AGR-20491",
		Stage:              "growing",
		UnitPrice:          2.499,
		Unit:               "bunch",
		Quantity:           40,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if product.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if product.UnitPrice != 2.50 {
		t.Fatalf("unit price = %v, want 2.50 (rounded)", product.UnitPrice)
	}
	if product.Stage != domain.StageGrowing {
		t.Fatalf("stage = %s, want growing", product.Stage)
	}
}

func TestProductService_Create_BadStage(t *testing.T) {
	svc, _ := newTestProductService()

	_, err := svc.Create(context.Background(), ports.CreateProductInput{
		FarmerID:  "farmer-1",
		Name:      "Rainbow Carrots",
		FarmName:  "Green Acres",
		FarmType:  "registered",
		Stage:     "sprouting",
		UnitPrice: 2.50,
		Quantity:  40,
	})
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestProductService_Create_RegisteredNeedsNumber(t *testing.T) {
	svc, _ := newTestProductService()

	_, err := svc.Create(context.Background(), ports.CreateProductInput{
		FarmerID:  "farmer-1",
		Name:      "Rainbow Carrots",
		FarmName:  "Green Acres",
		FarmType:  "registered",
		Stage:     "growing",
		UnitPrice: 2.50,
		Unit:      "bunch",
		Quantity:  40,
	})
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(ae.Fields) != 1 || ae.Fields[0].Field != "registration_number" {
		t.Fatalf("expected registration_number field error, got %+v", ae.Fields)
	}
}

func TestProductService_Update_Ownership(t *testing.T) {
	svc, repo := newTestProductService()
	seedProduct(repo, 10, 5.00)

	newPrice := 6.00

	// Another farmer cannot touch the listing.
	_, err := svc.Update(context.Background(),
		&domain.Identity{UserID: "farmer-2", Role: domain.RoleFarmer},
		"prod-1", ports.UpdateProductInput{UnitPrice: &newPrice})
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	// The owner can.
	updated, err := svc.Update(context.Background(), farmerIdentity(), "prod-1",
		ports.UpdateProductInput{UnitPrice: &newPrice})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.UnitPrice != 6.00 {
		t.Fatalf("unit price = %v, want 6.00", updated.UnitPrice)
	}

	// So can an admin.
	if _, err := svc.Update(context.Background(),
		&domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin},
		"prod-1", ports.UpdateProductInput{UnitPrice: &newPrice}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestProductService_Delete_Ownership(t *testing.T) {
	svc, repo := newTestProductService()
	seedProduct(repo, 10, 5.00)

	err := svc.Delete(context.Background(),
		&domain.Identity{UserID: "customer-1", Role: domain.RoleCustomer}, "prod-1")
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	if err := svc.Delete(context.Background(), farmerIdentity(), "prod-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "prod-1"); err == nil {
		t.Fatalf("expected not found after delete")
	}
}
