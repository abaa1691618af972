package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeVilla      PropertyType = "VILLA"
	PropertyTypeStudio     PropertyType = "STUDIO"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
)

func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeVilla,
		PropertyTypeStudio, PropertyTypeCommercial:
		return true
	}
	return false
}

// Property.IsAvailable is derived from its units and never written by users.
type Property struct {
	ID                uuid.UUID    `json:"id"`
	BusinessID        uuid.UUID    `json:"businessId"`
	Name              string       `json:"name"`
	Type              PropertyType `json:"type"`
	DailyRentalCost   float64      `json:"dailyRentalCost"`
	MonthlyRentalCost float64      `json:"monthlyRentalCost"`
	Address           string       `json:"address"`
	IsAvailable       bool         `json:"isAvailable"`
	Units             []*Unit      `json:"units,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// FindUnit returns the unit with the given number, or nil.
func (p *Property) FindUnit(number string) *Unit {
	for _, u := range p.Units {
		if u.Number == number {
			return u
		}
	}
	return nil
}
