package domain

import "time"

// FarmType distinguishes verified agricultural farms from private gardens.
type FarmType string

const (
	FarmRegistered FarmType = "registered"
	FarmPrivate    FarmType = "private"
)

// PlantingStage tracks where a product is in its growing cycle. Customers can
// reserve produce at any stage before "finished".
type PlantingStage string

const (
	StageJustPlanted PlantingStage = "just_planted"
	StageGrowing     PlantingStage = "growing"
	StageReadySoon   PlantingStage = "ready_soon"
	StageReadyNow    PlantingStage = "ready_now"
	StageHarvesting  PlantingStage = "harvesting"
	StageFinished    PlantingStage = "finished"
)

// ValidPlantingStage reports whether s is a known planting stage.
func ValidPlantingStage(s PlantingStage) bool {
	switch s {
	case StageJustPlanted, StageGrowing, StageReadySoon, StageReadyNow, StageHarvesting, StageFinished:
		return true
	}
	return false
}

// Product is a produce listing owned by a farmer. RegistrationNumber is set
// only for registered farms.
type Product struct {
	ID                 string        `json:"id"`
	FarmerID           string        `json:"farmer_id"`
	Name               string        `json:"name"`
	Description        string        `json:"description,omitempty"`
	FarmName           string        `json:"farm_name"`
	FarmType           FarmType      `json:"farm_type"`
	RegistrationNumber string        `json:"registration_number,omitempty"`
	Stage              PlantingStage `json:"stage"`
	UnitPrice          float64       `json:"unit_price"`
	Unit               string        `json:"unit"`
	Quantity           int           `json:"quantity"`
	HarvestDate        time.Time     `json:"harvest_date,omitempty"`
	ImageURL           string        `json:"image_url,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
