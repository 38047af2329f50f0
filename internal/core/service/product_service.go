package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/money"
	"github.com/farm2door/marketplace/internal/core/ports"
)

// ProductService implements the produce catalog use cases.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	stage := domain.PlantingStage(input.Stage)
	if !domain.ValidPlantingStage(stage) {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "stage",
			Message: "Unknown planting stage",
		})
	}

	farmType := domain.FarmType(input.FarmType)
	if farmType != domain.FarmRegistered && farmType != domain.FarmPrivate {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "farm_type",
			Message: "Farm type must be registered or private",
		})
	}

	if farmType == domain.FarmRegistered && input.RegistrationNumber == "" {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "registration_number",
			Message: "Registered farms must provide a registration number",
		})
	}

	product := &domain.Product{
		FarmerID:           input.FarmerID,
		Name:               input.Name,
		Description:        input.Description,
		FarmName:           input.FarmName,
		FarmType:           farmType,
		RegistrationNumber: input.RegistrationNumber,
		Stage:              stage,
		UnitPrice:          money.Round2(input.UnitPrice),
		Unit:               input.Unit,
		Quantity:           input.Quantity,
		HarvestDate:        input.HarvestDate,
		ImageURL:           input.ImageURL,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("farmer_id", input.FarmerID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("farmer_id", created.FarmerID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) (*ports.ListProductsResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListProductsResult{Items: items, Total: total, Page: filter.Page}, nil
}

func (s *ProductService) Update(ctx context.Context, actor *domain.Identity, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownedBy(actor, product.FarmerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Stage != nil {
		stage := domain.PlantingStage(*input.Stage)
		if !domain.ValidPlantingStage(stage) {
			return nil, domain.NewValidationError(domain.FieldError{
				Field:   "stage",
				Message: "Unknown planting stage",
			})
		}
		product.Stage = stage
	}
	if input.UnitPrice != nil {
		product.UnitPrice = money.Round2(*input.UnitPrice)
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.HarvestDate != nil {
		product.HarvestDate = *input.HarvestDate
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ownedBy(actor, product.FarmerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// ownedBy rejects actors that neither own the resource nor hold the admin role.
func ownedBy(actor *domain.Identity, ownerID string) error {
	if actor == nil {
		return domain.NewUnauthorized("Authentication required")
	}
	if actor.UserID != ownerID && actor.Role != domain.RoleAdmin {
		return domain.NewForbidden("You do not have permission to access this resource")
	}
	return nil
}
