package utils

import "errors"

// Sentinel errors for rental domain logic. Services wrap them in
// utils.AppError; controllers never see them bare.
var (
	ErrUnitNotAvailable  = errors.New("unit_not_available")
	ErrInvalidRentalData = errors.New("invalid_rental_data")
	ErrBusinessNotOwned  = errors.New("business_not_owned")
	ErrPropertyNotFound  = errors.New("property_not_found")
	ErrUnitNotFound      = errors.New("unit_not_found")
	ErrTenantNotFound    = errors.New("tenant_not_found")
	ErrRentalNotFound    = errors.New("rental_not_found")
	ErrInvalidOTP        = errors.New("invalid_otp")
)
