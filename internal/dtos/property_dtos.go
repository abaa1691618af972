package dtos

import (
	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type UnitRequest struct {
	Number      string `json:"number" validate:"required,min=2"`
	IsAvailable *bool  `json:"isAvailable"`
}

// PropertyRequest is used for both create and full replacement (PATCH).
type PropertyRequest struct {
	Name              string        `json:"name" validate:"required,min=3"`
	Type              string        `json:"type" validate:"required,property_type"`
	DailyRentalCost   float64       `json:"dailyRentalCost" validate:"gte=0"`
	MonthlyRentalCost float64       `json:"monthlyRentalCost" validate:"gte=0"`
	Address           string        `json:"address"`
	Units             []UnitRequest `json:"units" validate:"required,min=1,dive"`
}

// ToUnits builds unit rows for propertyID. isAvailable defaults to true.
func (r PropertyRequest) ToUnits(propertyID uuid.UUID) []*models.Unit {
	units := make([]*models.Unit, 0, len(r.Units))
	for _, u := range r.Units {
		available := true
		if u.IsAvailable != nil {
			available = *u.IsAvailable
		}
		units = append(units, &models.Unit{
			ID:          uuid.New(),
			PropertyID:  propertyID,
			Number:      u.Number,
			IsAvailable: available,
		})
	}
	return units
}
