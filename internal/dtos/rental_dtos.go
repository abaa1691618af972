package dtos

import "github.com/AbdellahHatouchi/property-management/pkg/models"

type CreateRentalRequest struct {
	PropertyID      string            `json:"propertyId" validate:"required,uuid"`
	Unit            string            `json:"unit" validate:"required"`
	TenantID        string            `json:"tenantId" validate:"required,uuid"`
	RentalType      string            `json:"rentalType" validate:"required,oneof=Daily Monthly"`
	RentalDateRange *models.DateRange `json:"rentalDateRange" validate:"required"`
	// RentalNumber is allocated server-side when empty.
	RentalNumber string `json:"rentalNumber" validate:"omitempty,max=32"`
}

type RentalNumberResponse struct {
	RentalNumber string `json:"rentalNumber"`
}

type SweepResponse struct {
	Message  string `json:"message"`
	Expired  int    `json:"expired"`
	Released int    `json:"released"`
	Sent     int    `json:"sent"`
	Failed   int    `json:"failed"`
}
