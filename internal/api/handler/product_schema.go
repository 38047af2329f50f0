package handler

import (
	"time"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// --- Request / Response types ---

type createProductRequest struct {
	Name               string    `json:"name"                validate:"required,min=3,max=100"`
	Description        string    `json:"description"         validate:"omitempty,max=500"`
	FarmName           string    `json:"farm_name"           validate:"required,min=3,max=100"`
	FarmType           string    `json:"farm_type"           validate:"required,oneof=registered private"`
	RegistrationNumber string    `json:"registration_number" validate:"omitempty,regnum"`
	Stage              string    `json:"stage"               validate:"required,oneof=just_planted growing ready_soon ready_now harvesting finished"`
	UnitPrice          float64   `json:"unit_price"          validate:"required,gt=0,lte=999999.99"`
	Unit               string    `json:"unit"                validate:"required,max=50"`
	Quantity           int       `json:"quantity"            validate:"required,gte=1"`
	HarvestDate        time.Time `json:"harvest_date"        validate:"omitempty,futuredate"`
	ImageURL           string    `json:"image_url"           validate:"omitempty,url"`
}

// updateProductRequest uses pointers so omitted fields stay untouched.
type updateProductRequest struct {
	Name        *string    `json:"name"         validate:"omitempty,min=3,max=100"`
	Description *string    `json:"description"  validate:"omitempty,max=500"`
	Stage       *string    `json:"stage"        validate:"omitempty,oneof=just_planted growing ready_soon ready_now harvesting finished"`
	UnitPrice   *float64   `json:"unit_price"   validate:"omitempty,gt=0,lte=999999.99"`
	Quantity    *int       `json:"quantity"     validate:"omitempty,gte=0"`
	HarvestDate *time.Time `json:"harvest_date" validate:"omitempty,futuredate"`
	ImageURL    *string    `json:"image_url"    validate:"omitempty,url"`
}

type productResponse struct {
	ID                 string    `json:"id"`
	FarmerID           string    `json:"farmer_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	FarmName           string    `json:"farm_name"`
	FarmType           string    `json:"farm_type"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	Stage              string    `json:"stage"`
	UnitPrice          float64   `json:"unit_price"`
	Unit               string    `json:"unit"`
	Quantity           int       `json:"quantity"`
	HarvestDate        time.Time `json:"harvest_date,omitempty"`
	ImageURL           string    `json:"image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:                 p.ID,
		FarmerID:           p.FarmerID,
		Name:               p.Name,
		Description:        p.Description,
		FarmName:           p.FarmName,
		FarmType:           string(p.FarmType),
		RegistrationNumber: p.RegistrationNumber,
		Stage:              string(p.Stage),
		UnitPrice:          p.UnitPrice,
		Unit:               p.Unit,
		Quantity:           p.Quantity,
		HarvestDate:        p.HarvestDate,
		ImageURL:           p.ImageURL,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProductResponses(items []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProductResponse(p))
	}
	return out
}
